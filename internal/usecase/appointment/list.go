package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type ListAppointments struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListAppointments(
	repo domain.Repository,
	clock timezone.Clock,
) *ListAppointments {
	return &ListAppointments{
		repo:  repo,
		clock: clock,
	}
}

// ForActor lists what the actor may see: a patient's own bookings, a
// doctor's agenda, or everything for an admin.
func (uc *ListAppointments) ForActor(
	ctx context.Context,
	actor domain.Actor,
) ([]dto.AppointmentListDTO, error) {

	var (
		apps []models.Appointment
		err  error
	)

	switch actor.Role {
	case domain.RolePatient:
		apps, err = uc.repo.ListForPatient(ctx, actor.ID)
	case domain.RoleDoctor:
		apps, err = uc.repo.ListForDoctor(ctx, actor.ID)
	case domain.RoleAdmin:
		apps, err = uc.repo.ListAll(ctx)
	default:
		return nil, ErrNotAuthorized
	}
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(apps), nil
}

// ByMonth is the doctor's calendar view, in clinic time.
func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	doctorID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 1970 {
		return nil, domain.ErrInvalidMonth
	}

	loc := uc.clock().Location()
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	apps, err := uc.repo.ListForDoctorPeriod(ctx, doctorID, start, end)
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(apps), nil
}

func (uc *ListAppointments) Get(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {
	return load(ctx, uc.repo, actor, appointmentID)
}
