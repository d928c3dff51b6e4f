package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type DoctorSummary struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Speciality string  `json:"speciality"`
	Image      string  `json:"image"`
	Fees       float64 `json:"fees"`
}

type PatientSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
	DOB   string `json:"dob"`
}

type AppointmentListDTO struct {
	ID             uint           `json:"id"`
	Reference      string         `json:"reference"`
	SlotDate       string         `json:"slot_date"`
	SlotTime       string         `json:"slot_time"`
	SlotAt         time.Time      `json:"slot_at"`
	Status         string         `json:"status"`
	Amount         float64        `json:"amount"`
	Paid           bool           `json:"paid"`
	PaymentGateway string         `json:"payment_gateway,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	Doctor         DoctorSummary  `json:"doctor"`
	Patient        PatientSummary `json:"patient"`
}

func FromAppointment(ap *models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:             ap.ID,
		Reference:      ap.Reference,
		SlotDate:       ap.SlotDate,
		SlotTime:       ap.SlotTime,
		SlotAt:         ap.SlotAt,
		Status:         ap.Status,
		Amount:         ap.Amount,
		Paid:           ap.Paid,
		PaymentGateway: ap.PaymentGateway,
		CreatedAt:      ap.CreatedAt,
		Doctor: DoctorSummary{
			ID:         ap.Doctor.ID,
			Name:       ap.Doctor.Name,
			Speciality: ap.Doctor.Speciality,
			Image:      ap.Doctor.Image,
			Fees:       ap.Doctor.Fees,
		},
		Patient: PatientSummary{
			ID:    ap.Patient.ID,
			Name:  ap.Patient.Name,
			Email: ap.Patient.Email,
			Image: ap.Patient.Image,
			DOB:   ap.Patient.DOB,
		},
	}
}

func FromAppointments(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for i := range apps {
		out = append(out, FromAppointment(&apps[i]))
	}
	return out
}
