package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type DoctorHandler struct {
	db    *gorm.DB
	cache *cache.DoctorCache
}

func NewDoctorHandler(db *gorm.DB, doctors *cache.DoctorCache) *DoctorHandler {
	return &DoctorHandler{db: db, cache: doctors}
}

type DoctorDashboard struct {
	Earnings           float64                  `json:"earnings"`
	Appointments       int64                    `json:"appointments"`
	Patients           int64                    `json:"patients"`
	LatestAppointments []dto.AppointmentListDTO `json:"latest_appointments"`
}

// Campos opcionais: só o que vier no corpo é alterado.
type DoctorProfileRequest struct {
	About        *string  `json:"about"`
	CaseHistory  *string  `json:"case_history"`
	Fees         *float64 `json:"fees"`
	AddressLine1 *string  `json:"address_line1"`
	AddressLine2 *string  `json:"address_line2"`
	Available    *bool    `json:"available"`
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *DoctorHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.ActorFrom(c)

	base := func() *gorm.DB {
		return h.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("doctor_id = ?", actor.ID)
	}

	var out DoctorDashboard

	if err := base().
		Where("status = ? OR paid = ?", string(domain.StatusCompleted), true).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&out.Earnings).Error; err != nil {
		httperr.Internal(c, "dashboard_failed", "Could not load the dashboard.")
		return
	}

	if err := base().Count(&out.Appointments).Error; err != nil {
		httperr.Internal(c, "dashboard_failed", "Could not load the dashboard.")
		return
	}

	if err := base().Distinct("patient_id").Count(&out.Patients).Error; err != nil {
		httperr.Internal(c, "dashboard_failed", "Could not load the dashboard.")
		return
	}

	var latest []models.Appointment
	if err := h.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		Where("doctor_id = ?", actor.ID).
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
// PROFILE
// ======================================================

func (h *DoctorHandler) Profile(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var doc models.Doctor
	if err := h.db.WithContext(c.Request.Context()).First(&doc, actor.ID).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}
	httpresp.OK(c, doc)
}

func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.ActorFrom(c)

	var req DoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var doc models.Doctor
	if err := h.db.WithContext(ctx).First(&doc, actor.ID).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	if req.Fees != nil && *req.Fees < 0 {
		httperr.BadRequest(c, "invalid_fees", "Fees cannot be negative.")
		return
	}

	if req.About != nil {
		doc.About = strings.TrimSpace(*req.About)
	}
	if req.CaseHistory != nil {
		doc.CaseHistory = strings.TrimSpace(*req.CaseHistory)
	}
	if req.Fees != nil {
		doc.Fees = *req.Fees
	}
	if req.AddressLine1 != nil {
		doc.AddressLine1 = strings.TrimSpace(*req.AddressLine1)
	}
	if req.AddressLine2 != nil {
		doc.AddressLine2 = strings.TrimSpace(*req.AddressLine2)
	}
	if req.Available != nil {
		doc.Available = *req.Available
	}

	if err := h.db.WithContext(ctx).Save(&doc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update the profile.")
		return
	}

	if err := h.cache.Invalidate(ctx); err != nil {
		zap.L().Warn("doctor cache invalidation failed", zap.Error(err))
	}

	httpresp.OK(c, doc)
}
