package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

// --------------------------------------------------
// Doctor
// --------------------------------------------------

func (r *AppointmentGormRepository) GetDoctor(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, notFound(err, domain.ErrDoctorNotFound)
	}
	return &doc, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPatient(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, domain.ErrPatientNotFound)
	}
	return &p, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Doctor", "Patient").Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Doctor", "Patient").Save(ap).Error
}

func (r *AppointmentGormRepository) MoveAppointment(
	ctx context.Context,
	ap *models.Appointment,
	from schedule.SlotRef,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"id = ? AND status = ? AND slot_date = ? AND slot_time IN ?",
			ap.ID, string(domain.StatusBooked), from.Date.String(), schedule.LabelVariants(from.Time),
		).
		Updates(map[string]any{
			"slot_date":      ap.SlotDate,
			"slot_time":      ap.SlotTime,
			"slot_at":        ap.SlotAt,
			"rescheduled_at": ap.RescheduledAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAppointmentChanged
	}
	return nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}
	return &ap, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) list(
	ctx context.Context,
	order string,
	where ...any,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient")

	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}

	var apps []models.Appointment
	if err := q.Order(order).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListForPatient(
	ctx context.Context,
	patientID uint,
) ([]models.Appointment, error) {
	return r.list(ctx, "created_at DESC", "patient_id = ?", patientID)
}

func (r *AppointmentGormRepository) ListForDoctor(
	ctx context.Context,
	doctorID uint,
) ([]models.Appointment, error) {
	return r.list(ctx, "slot_at DESC", "doctor_id = ?", doctorID)
}

func (r *AppointmentGormRepository) ListForDoctorPeriod(
	ctx context.Context,
	doctorID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return r.list(ctx, "slot_at ASC",
		"doctor_id = ? AND slot_at >= ? AND slot_at < ?",
		doctorID, start, end,
	)
}

func (r *AppointmentGormRepository) ListAll(
	ctx context.Context,
) ([]models.Appointment, error) {
	return r.list(ctx, "created_at DESC")
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
