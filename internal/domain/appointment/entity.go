package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// MoveTo points ap at a new slot. The registry swap is the caller's job.
func MoveTo(ap *models.Appointment, slot schedule.CandidateSlot, now time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.SlotDate = slot.Date.String()
	ap.SlotTime = slot.Label
	ap.SlotAt = slot.DateTime
	ap.RescheduledAt = &now
	return nil
}

func MarkPaid(ap *models.Appointment, gateway, reference string, now time.Time) error {
	if err := CanPay(Status(ap.Status), ap.Paid); err != nil {
		return err
	}

	ap.Paid = true
	ap.PaymentGateway = gateway
	ap.PaymentRef = reference
	ap.PaidAt = &now
	return nil
}

// SlotOf returns the registry reference held by ap.
func SlotOf(ap *models.Appointment) (schedule.SlotRef, error) {
	return schedule.NewSlotRef(ap.SlotDate, ap.SlotTime)
}

// Owns reports whether actor may see and act on ap.
func Owns(actor Actor, ap *models.Appointment) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleDoctor:
		return ap.DoctorID == actor.ID
	case RolePatient:
		return ap.PatientID == actor.ID
	}
	return false
}
