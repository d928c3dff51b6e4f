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

type CancelAppointment struct {
	repo     domain.Repository
	store    schedule.Store
	clock    timezone.Clock
	audit    *audit.Dispatcher
	notifier notification.Notifier
	log      *zap.Logger
}

func NewCancelAppointment(
	repo domain.Repository,
	store schedule.Store,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	notifier notification.Notifier,
	log *zap.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		store:    store,
		clock:    clock,
		audit:    audit,
		notifier: notifier,
		log:      log,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := load(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, uc.clock()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// The appointment is already cancelled; a slot that could not be freed
	// only costs availability.
	if ref, err := domain.SlotOf(ap); err == nil {
		if err := uc.store.Release(ctx, ap.DoctorID, ref); err != nil {
			uc.log.Error("slot not released after cancel",
				zap.Uint("appointment_id", ap.ID),
				zap.String("slot", ref.String()),
				zap.Error(err),
			)
		}
	}

	uc.audit.Dispatch(appointmentEvent(actor, ap, audit.ActionCancelled, nil))

	ev := notification.ForAppointment(notification.KindCancelled, ap)
	ev.NotifyDoctor = actor.Role != domain.RoleDoctor
	notify(ctx, uc.notifier, uc.log, ev)

	return ap, nil
}
