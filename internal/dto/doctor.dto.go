package dto

import "github.com/BruksfildServices01/clinic-scheduler/internal/models"

// DoctorPublic is what patients see; no credentials, no storage ids.
type DoctorPublic struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Image        string  `json:"image"`
	Speciality   string  `json:"speciality"`
	Degree       string  `json:"degree"`
	Experience   string  `json:"experience"`
	About        string  `json:"about"`
	Fees         float64 `json:"fees"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 string  `json:"address_line2"`
	Available    bool    `json:"available"`
}

func FromDoctor(d *models.Doctor) DoctorPublic {
	return DoctorPublic{
		ID:           d.ID,
		Name:         d.Name,
		Slug:         d.Slug,
		Image:        d.Image,
		Speciality:   d.Speciality,
		Degree:       d.Degree,
		Experience:   d.Experience,
		About:        d.About,
		Fees:         d.Fees,
		AddressLine1: d.AddressLine1,
		AddressLine2: d.AddressLine2,
		Available:    d.Available,
	}
}

func FromDoctors(docs []models.Doctor) []DoctorPublic {
	out := make([]DoctorPublic, 0, len(docs))
	for i := range docs {
		out = append(out, FromDoctor(&docs[i]))
	}
	return out
}
