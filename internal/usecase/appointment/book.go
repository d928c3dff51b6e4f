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

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	PatientID uint
	DoctorID  uint

	SlotDate string
	SlotTime string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo     domain.Repository
	store    schedule.Store
	clock    timezone.Clock
	audit    *audit.Dispatcher
	notifier notification.Notifier
	log      *zap.Logger

	newReference func() (string, error)
}

func NewBookAppointment(
	repo domain.Repository,
	store schedule.Store,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	notifier notification.Notifier,
	log *zap.Logger,
) *BookAppointment {
	return &BookAppointment{
		repo:         repo,
		store:        store,
		clock:        clock,
		audit:        audit,
		notifier:     notifier,
		log:          log,
		newReference: NewReference,
	}
}

const referenceAttempts = 3

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	actor := domain.Actor{Role: domain.RolePatient, ID: in.PatientID}

	// --------------------------------------------------
	// 1. Slot pedido
	// --------------------------------------------------
	selected, err := schedule.NewSlotRef(in.SlotDate, in.SlotTime)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Médico e paciente
	// --------------------------------------------------
	doc, err := uc.repo.GetDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doc.Available {
		return nil, domain.ErrDoctorUnavailable
	}

	patient, err := uc.repo.GetPatient(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Decisão contra a semana atual
	// --------------------------------------------------
	week, err := loadWeek(ctx, uc.store, uc.clock, doc, nil)
	if err != nil {
		return nil, err
	}

	m, err := schedule.Decide(doc.ID, selected, week, nil)
	if err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.audit.Dispatch(slotConflictEvent(actor, doc.ID, selected))
		}
		return nil, err
	}
	slot, _ := week.Find(selected)

	// --------------------------------------------------
	// 4. Reserva no registro (atômica)
	// --------------------------------------------------
	if err := uc.store.Apply(ctx, m); err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.audit.Dispatch(slotConflictEvent(actor, doc.ID, selected))
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5. Agendamento
	// --------------------------------------------------
	ap := &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doc.ID,
		SlotDate:  slot.Date.String(),
		SlotTime:  slot.Label,
		SlotAt:    slot.DateTime,
		Amount:    doc.Fees,
		Status:    string(domain.InitialStatus()),
	}

	if err := uc.create(ctx, ap); err != nil {
		if rerr := uc.store.Release(ctx, doc.ID, selected); rerr != nil {
			uc.log.Error("slot left reserved after failed booking",
				zap.Uint("doctor_id", doc.ID),
				zap.String("slot", selected.String()),
				zap.Error(rerr),
			)
		}
		return nil, err
	}

	ap.Doctor = *doc
	ap.Patient = *patient

	// --------------------------------------------------
	// 6. Auditoria e e-mail
	// --------------------------------------------------
	uc.audit.Dispatch(appointmentEvent(actor, ap, audit.ActionBooked, map[string]string{
		"slot":      selected.String(),
		"reference": ap.Reference,
	}))
	notify(ctx, uc.notifier, uc.log, notification.ForAppointment(notification.KindConfirmed, ap))

	return ap, nil
}

// create retries when the generated reference collides with an existing one.
func (uc *BookAppointment) create(ctx context.Context, ap *models.Appointment) error {
	var err error
	for range referenceAttempts {
		ap.Reference, err = uc.newReference()
		if err != nil {
			return err
		}
		err = uc.repo.CreateAppointment(ctx, ap)
		if err == nil || !httperr.IsUniqueViolation(err) {
			return err
		}
	}
	return err
}
