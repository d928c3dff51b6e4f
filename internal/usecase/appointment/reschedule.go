package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type RescheduleAppointmentInput struct {
	Actor         domain.Actor
	AppointmentID uint

	SlotDate string
	SlotTime string
}

type RescheduleAppointment struct {
	repo     domain.Repository
	store    schedule.Store
	clock    timezone.Clock
	audit    *audit.Dispatcher
	notifier notification.Notifier
	log      *zap.Logger
}

func NewRescheduleAppointment(
	repo domain.Repository,
	store schedule.Store,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	notifier notification.Notifier,
	log *zap.Logger,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		store:    store,
		clock:    clock,
		audit:    audit,
		notifier: notifier,
		log:      log,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	selected, err := schedule.NewSlotRef(in.SlotDate, in.SlotTime)
	if err != nil {
		return nil, err
	}

	ap, err := load(ctx, uc.repo, in.Actor, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	current, err := domain.SlotOf(ap)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Decisão com o slot atual liberado para este agendamento
	// --------------------------------------------------
	week, err := loadWeek(ctx, uc.store, uc.clock, &ap.Doctor, &current)
	if err != nil {
		return nil, err
	}

	m, err := schedule.Decide(ap.DoctorID, selected, week, &current)
	if err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.audit.Dispatch(slotConflictEvent(in.Actor, ap.DoctorID, selected))
		}
		return nil, err
	}
	slot, _ := week.Find(selected)

	if err := uc.store.Apply(ctx, m); err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.audit.Dispatch(slotConflictEvent(in.Actor, ap.DoctorID, selected))
		}
		return nil, err
	}

	// --------------------------------------------------
	// Persistência; desfaz a troca no registro se falhar
	// --------------------------------------------------
	if err := domain.MoveTo(ap, slot, uc.clock()); err != nil {
		uc.compensate(ctx, m)
		return nil, err
	}

	if err := uc.repo.MoveAppointment(ctx, ap, current); err != nil {
		if httperr.IsBusiness(err, "appointment_changed") {
			// the winner already released current; only drop our reservation
			uc.releaseReserved(ctx, m)
			return nil, err
		}
		uc.compensate(ctx, m)
		return nil, err
	}

	uc.audit.Dispatch(appointmentEvent(in.Actor, ap, audit.ActionRescheduled, map[string]string{
		"from": current.String(),
		"to":   selected.String(),
	}))
	notify(ctx, uc.notifier, uc.log,
		notification.ForAppointment(notification.KindRescheduled, ap).WithPrevious(current),
	)

	return ap, nil
}

func (uc *RescheduleAppointment) releaseReserved(ctx context.Context, m schedule.Mutation) {
	if err := uc.store.Release(ctx, m.DoctorID, m.Reserve); err != nil {
		uc.log.Error("reserved slot not released",
			zap.Uint("doctor_id", m.DoctorID),
			zap.String("reserved", m.Reserve.String()),
			zap.Error(err),
		)
	}
}

func (uc *RescheduleAppointment) compensate(ctx context.Context, m schedule.Mutation) {
	rev, ok := m.Reverse()
	if !ok {
		return
	}
	if err := uc.store.Apply(ctx, rev); err != nil {
		uc.log.Error("registry swap not reverted",
			zap.Uint("doctor_id", m.DoctorID),
			zap.String("reserved", m.Reserve.String()),
			zap.Error(err),
		)
	}
}
