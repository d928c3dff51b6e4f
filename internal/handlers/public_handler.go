package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	cache        *cache.DoctorCache
	availability *ucAppointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	doctors *cache.DoctorCache,
	availability *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		cache:        doctors,
		availability: availability,
	}
}

////////////////////////////////////////////////////////
// DOCTORS
////////////////////////////////////////////////////////

// ListDoctors returns the available doctors. The unfiltered list is cached.
func (h *PublicHandler) ListDoctors(c *gin.Context) {
	ctx := c.Request.Context()
	speciality := strings.TrimSpace(c.Query("speciality"))

	if speciality == "" {
		var cached []dto.DoctorPublic
		if ok, err := h.cache.Get(ctx, &cached); err != nil {
			zap.L().Warn("doctor cache read failed", zap.Error(err))
		} else if ok {
			httpresp.List(c, cached)
			return
		}
	}

	q := h.db.WithContext(ctx).Where("available = ?", true)
	if speciality != "" {
		q = q.Where("LOWER(speciality) = ?", strings.ToLower(speciality))
	}

	var docs []models.Doctor
	if err := q.Order("name ASC").Find(&docs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Could not list doctors.")
		return
	}

	out := dto.FromDoctors(docs)
	if speciality == "" {
		if err := h.cache.Set(ctx, out); err != nil {
			zap.L().Warn("doctor cache write failed", zap.Error(err))
		}
	}

	httpresp.List(c, out)
}

func (h *PublicHandler) doctorBySlug(c *gin.Context) (*models.Doctor, bool) {
	var doc models.Doctor
	err := h.db.WithContext(c.Request.Context()).
		Where("slug = ?", c.Param("slug")).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return nil, false
	}
	if err != nil {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return nil, false
	}
	return &doc, true
}

func (h *PublicHandler) GetDoctor(c *gin.Context) {
	doc, ok := h.doctorBySlug(c)
	if !ok {
		return
	}
	httpresp.OK(c, dto.FromDoctor(doc))
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

// Slots is the week offered to a new booking.
func (h *PublicHandler) Slots(c *gin.Context) {
	doc, ok := h.doctorBySlug(c)
	if !ok {
		return
	}

	week, err := h.availability.ForDoctor(c.Request.Context(), doc.ID)
	if err != nil {
		mapBusinessError(c, err)
		return
	}
	httpresp.List(c, dto.FromWeek(week))
}
