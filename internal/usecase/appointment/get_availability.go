package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	store schedule.Store
	clock timezone.Clock
}

func NewGetAvailability(
	repo domain.Repository,
	store schedule.Store,
	clock timezone.Clock,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		store: store,
		clock: clock,
	}
}

// ForDoctor is the week offered to a new booking.
func (uc *GetAvailability) ForDoctor(
	ctx context.Context,
	doctorID uint,
) (schedule.Week, error) {

	doc, err := uc.repo.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !doc.Available {
		return nil, domain.ErrDoctorUnavailable
	}

	return loadWeek(ctx, uc.store, uc.clock, doc, nil)
}

// ForAppointment is the week offered when moving ap; its own slot stays
// selectable.
func (uc *GetAvailability) ForAppointment(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (schedule.Week, error) {

	ap, err := load(ctx, uc.repo, actor, appointmentID)
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

	return loadWeek(ctx, uc.store, uc.clock, &ap.Doctor, &current)
}
