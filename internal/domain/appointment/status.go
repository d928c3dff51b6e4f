package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var (
	ErrInvalidState = httperr.ErrBusiness("invalid_state")
	ErrAlreadyPaid  = httperr.ErrBusiness("already_paid")
)

// ===============================
// Validations
// ===============================

// CanCancel: only booked appointments can be cancelled.
func CanCancel(current Status) error {
	if current != StatusBooked {
		return ErrInvalidState
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusBooked {
		return ErrInvalidState
	}
	return nil
}

// CanReschedule: a rescheduled appointment stays booked, so it can be moved
// again.
func CanReschedule(current Status) error {
	if current != StatusBooked {
		return ErrInvalidState
	}
	return nil
}

func CanPay(current Status, paid bool) error {
	if current != StatusBooked {
		return ErrInvalidState
	}
	if paid {
		return ErrAlreadyPaid
	}
	return nil
}

func InitialStatus() Status {
	return StatusBooked
}
