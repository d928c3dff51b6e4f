package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db    *gorm.DB
	clock timezone.Clock
}

func NewAuditLogsHandler(db *gorm.DB, clock timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, clock: clock}
}

// List is admin only; from/to are YYYY-MM-DD in clinic time, both inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit, offset := pagination(c)
	loc := h.clock().Location()

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if v := c.Query("doctor_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor_id.")
			return
		}
		q = q.Where("doctor_id = ?", uint(id))
	}

	if v := c.Query("from"); v != "" {
		from, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Dates must use YYYY-MM-DD.")
			return
		}
		q = q.Where("created_at >= ?", from)
	}

	if v := c.Query("to"); v != "" {
		to, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Dates must use YYYY-MM-DD.")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	// --------------------------------------------------
	// Total + listagem
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
