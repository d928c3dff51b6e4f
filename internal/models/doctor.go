package models

import "time"

type Doctor struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:120;uniqueIndex;not null" json:"slug"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Image         string `gorm:"size:255" json:"image"`
	ImagePublicID string `gorm:"size:255" json:"-"`

	Speciality  string  `gorm:"size:100;not null" json:"speciality"`
	Degree      string  `gorm:"size:100" json:"degree"`
	Experience  string  `gorm:"size:50" json:"experience"`
	About       string  `gorm:"type:text" json:"about"`
	CaseHistory string  `gorm:"type:text" json:"case_history"`
	Fees        float64 `json:"fees"`

	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`

	Available bool `gorm:"default:true" json:"available"`

	// "HH:MM"; empty means the clinic default.
	WorkStart string `gorm:"size:5" json:"work_start"`
	WorkEnd   string `gorm:"size:5" json:"work_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
