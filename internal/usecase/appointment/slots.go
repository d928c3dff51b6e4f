package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// loadWeek reads the doctor's registry for the coming days and builds the
// bookable week. exempt is the slot held by the appointment being moved.
func loadWeek(
	ctx context.Context,
	store schedule.Store,
	clock timezone.Clock,
	doc *models.Doctor,
	exempt *schedule.SlotRef,
) (schedule.Week, error) {

	wh, err := domain.WorkingHoursOf(doc)
	if err != nil {
		return nil, err
	}

	now := clock()
	booked, err := store.Booked(ctx, doc.ID, schedule.WeekKeys(now))
	if err != nil {
		return nil, err
	}

	return schedule.BuildWeek(now, wh, booked, exempt), nil
}

// notify never fails the operation; delivery problems are only logged.
func notify(
	ctx context.Context,
	n notification.Notifier,
	log *zap.Logger,
	ev notification.Event,
) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, ev); err != nil {
		log.Warn("notification not queued",
			zap.String("kind", string(ev.Kind)),
			zap.Uint("appointment_id", ev.AppointmentID),
			zap.Error(err),
		)
	}
}

func appointmentEvent(actor domain.Actor, ap *models.Appointment, action string, meta any) audit.Event {
	doctorID := ap.DoctorID
	entityID := ap.ID
	return audit.Event{
		ActorRole: string(actor.Role),
		ActorID:   actor.IDPtr(),
		DoctorID:  &doctorID,
		Action:    action,
		Entity:    "appointment",
		EntityID:  &entityID,
		Metadata:  meta,
	}
}

func slotConflictEvent(actor domain.Actor, doctorID uint, ref schedule.SlotRef) audit.Event {
	return audit.Event{
		ActorRole: string(actor.Role),
		ActorID:   actor.IDPtr(),
		DoctorID:  &doctorID,
		Action:    audit.ActionSlotConflict,
		Entity:    "slot",
		Metadata:  map[string]string{"slot": ref.String()},
	}
}

// load fetches an appointment the actor is allowed to see. Someone else's
// appointment is reported as missing.
func load(
	ctx context.Context,
	repo domain.Repository,
	actor domain.Actor,
	id uint,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.Owns(actor, ap) {
		return nil, domain.ErrAppointmentNotFound
	}
	return ap, nil
}
