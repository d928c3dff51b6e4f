package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

type AdminDashboard struct {
	Doctors            int64                    `json:"doctors"`
	Appointments       int64                    `json:"appointments"`
	Patients           int64                    `json:"patients"`
	Earnings           float64                  `json:"earnings"`
	LatestAppointments []dto.AppointmentListDTO `json:"latest_appointments"`
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *AdminHandler) Dashboard(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	var out AdminDashboard
	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.Doctor{}, &out.Doctors},
		{&models.Appointment{}, &out.Appointments},
		{&models.Patient{}, &out.Patients},
	}
	for _, q := range counts {
		if err := db.Model(q.model).Count(q.dst).Error; err != nil {
			httperr.Internal(c, "dashboard_failed", "Could not load the dashboard.")
			return
		}
	}

	if err := db.Model(&models.Appointment{}).
		Where("status = ? OR paid = ?", string(domain.StatusCompleted), true).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&out.Earnings).Error; err != nil {
		httperr.Internal(c, "dashboard_failed", "Could not load the dashboard.")
		return
	}

	var latest []models.Appointment
	if err := db.Preload("Doctor").
		Preload("Patient").
		Order("created_at DESC").
		Limit(5).
		Find(&latest).Error; err != nil {
		httperr.Internal(c, "dashboard_failed", "Could not load the dashboard.")
		return
	}
	out.LatestAppointments = dto.FromAppointments(latest)

	httpresp.OK(c, out)
}

// ======================================================
// PATIENTS
// ======================================================

// Patients lists accounts, optionally filtered by ?query= on name, e-mail or
// phone.
func (h *AdminHandler) Patients(c *gin.Context) {
	page, limit, offset := pagination(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Patient{})

	if term := strings.TrimSpace(c.Query("query")); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_patients", "Could not list patients.")
		return
	}

	var patients []models.Patient
	if err := q.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&patients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_patients", "Could not list patients.")
		return
	}

	httpresp.Page(c, patients, page, limit, total)
}
