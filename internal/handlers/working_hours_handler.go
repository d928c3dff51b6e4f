package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	cache *cache.DoctorCache
}

func NewWorkingHoursHandler(db *gorm.DB, doctors *cache.DoctorCache) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, cache: doctors}
}

type WorkingHoursRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type WorkingHoursResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var doc models.Doctor
	if err := h.db.WithContext(c.Request.Context()).First(&doc, actor.ID).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	wh, err := domain.WorkingHoursOf(&doc)
	if err != nil {
		// Stored values are validated on write; fall back to what slots use.
		wh = schedule.DefaultWorkingHours
	}

	httpresp.OK(c, WorkingHoursResponse{
		StartTime: wh.Start.String(),
		EndTime:   wh.End.String(),
	})
}

// Update replaces the daily window. The lunch break is fixed and not part of
// the request.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.ActorFrom(c)

	var req WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "start_time and end_time are required.")
		return
	}

	wh, err := schedule.ParseWorkingHours(req.StartTime, req.EndTime)
	if err == nil {
		err = wh.Validate()
	}
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	res := h.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", actor.ID).
		Updates(map[string]any{
			"work_start": wh.Start.String(),
			"work_end":   wh.End.String(),
		})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Could not save the working hours.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	if err := h.cache.Invalidate(ctx); err != nil {
		zap.L().Warn("doctor cache invalidation failed", zap.Error(err))
	}

	httpresp.OK(c, WorkingHoursResponse{
		StartTime: wh.Start.String(),
		EndTime:   wh.End.String(),
	})
}
