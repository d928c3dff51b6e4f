package models

import "time"

// Paciente com login próprio
type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	Image         string `gorm:"size:255" json:"image"`
	ImagePublicID string `gorm:"size:255" json:"-"`

	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`
	Gender       string `gorm:"size:20" json:"gender"`
	DOB          string `gorm:"size:10" json:"dob"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
