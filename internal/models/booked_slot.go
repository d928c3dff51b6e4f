package models

import "time"

// BookedSlot is one reserved (doctor, date, time) triple. The unique index is
// what makes concurrent reservations of the same slot fail.
type BookedSlot struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	DoctorID uint   `gorm:"not null;uniqueIndex:idx_booked_slot" json:"doctor_id"`
	SlotDate string `gorm:"size:12;not null;uniqueIndex:idx_booked_slot" json:"slot_date"`
	SlotTime string `gorm:"size:8;not null;uniqueIndex:idx_booked_slot" json:"slot_time"`

	CreatedAt time.Time `json:"created_at"`
}
