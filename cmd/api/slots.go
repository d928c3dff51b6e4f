package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// slotsCmd prints the bookable week of a doctor against live data.
func slotsCmd() *cobra.Command {
	var (
		doctorID      uint
		appointmentID uint
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print a doctor's availability for the next 7 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if doctorID == 0 && appointmentID == 0 {
				return fmt.Errorf("--doctor or --appointment is required")
			}

			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			store, err := a.registry(cmd.Context())
			if err != nil {
				return err
			}

			uc := ucAppointment.NewGetAvailability(
				infraRepo.NewAppointmentGormRepository(a.db), store, a.clock,
			)

			var week schedule.Week
			if appointmentID != 0 {
				admin := domain.Actor{Role: domain.RoleAdmin}
				week, err = uc.ForAppointment(cmd.Context(), admin, appointmentID)
			} else {
				week, err = uc.ForDoctor(cmd.Context(), doctorID)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range week {
				labels := make([]string, 0, len(d.Slots))
				for _, s := range d.Slots {
					labels = append(labels, s.Label)
				}
				if len(labels) == 0 {
					labels = append(labels, "-")
				}
				fmt.Fprintf(out, "%s %-10s %s\n",
					strings.ToUpper(d.Day.Format("Mon")),
					d.Date.Slashed(),
					strings.Join(labels, ", "),
				)
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&doctorID, "doctor", 0, "doctor id")
	cmd.Flags().UintVar(&appointmentID, "appointment", 0, "appointment id; its own slot is shown as free")
	return cmd
}
