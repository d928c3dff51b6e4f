package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Doctor --------
	GetDoctor(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	// -------- Patient --------
	GetPatient(
		ctx context.Context,
		id uint,
	) (*models.Patient, error)

	// -------- Appointment (create / state change) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// MoveAppointment stores ap's new slot only if the row is still booked
	// at from. Otherwise it returns ErrAppointmentChanged.
	MoveAppointment(
		ctx context.Context,
		ap *models.Appointment,
		from schedule.SlotRef,
	) error

	// GetAppointment preloads Doctor and Patient.
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// -------- Listings --------
	ListForPatient(
		ctx context.Context,
		patientID uint,
	) ([]models.Appointment, error)

	ListForDoctor(
		ctx context.Context,
		doctorID uint,
	) ([]models.Appointment, error)

	ListForDoctorPeriod(
		ctx context.Context,
		doctorID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAll(
		ctx context.Context,
	) ([]models.Appointment, error)
}
