package models

import "time"

type Appointment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:20;uniqueIndex" json:"reference"`

	PatientID uint    `gorm:"index" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"patient"`

	DoctorID uint   `gorm:"index" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor"`

	// Stored as the registry keys them: "D_M_YYYY" and "03:04 PM".
	SlotDate string    `gorm:"size:12;not null" json:"slot_date"`
	SlotTime string    `gorm:"size:8;not null" json:"slot_time"`
	SlotAt   time.Time `gorm:"index" json:"slot_at"`

	Amount float64 `json:"amount"`
	Status string  `gorm:"size:20;default:'booked'" json:"status"`

	Paid           bool       `gorm:"default:false" json:"paid"`
	PaymentGateway string     `gorm:"size:20" json:"payment_gateway"`
	PaymentRef     string     `gorm:"size:255" json:"payment_ref"`
	PaidAt         *time.Time `json:"paid_at"`

	CancelledAt   *time.Time `json:"cancelled_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	RescheduledAt *time.Time `json:"rescheduled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
