package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

var (
	ErrAppointmentNotFound = httperr.ErrBusiness("appointment_not_found")
	ErrDoctorNotFound      = httperr.ErrBusiness("doctor_not_found")
	ErrPatientNotFound     = httperr.ErrBusiness("patient_not_found")
	ErrDoctorUnavailable   = httperr.ErrBusiness("doctor_unavailable")
	ErrInvalidMonth        = httperr.ErrBusiness("invalid_month")

	// ErrAppointmentChanged: someone else moved or cancelled it first.
	ErrAppointmentChanged = httperr.ErrBusiness("appointment_changed")
)
