package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
)

type PatientHandler struct {
	db     *gorm.DB
	images storage.ImageStore
}

func NewPatientHandler(db *gorm.DB, images storage.ImageStore) *PatientHandler {
	return &PatientHandler{db: db, images: images}
}

// ======================================================
// PROFILE (PACIENTE)
// ======================================================

func (h *PatientHandler) Profile(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var p models.Patient
	if err := h.db.WithContext(c.Request.Context()).First(&p, actor.ID).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfile takes a multipart form; the image field is optional.
func (h *PatientHandler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.ActorFrom(c)

	var p models.Patient
	if err := h.db.WithContext(ctx).First(&p, actor.ID).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	phone := strings.TrimSpace(c.PostForm("phone"))
	dob := strings.TrimSpace(c.PostForm("dob"))
	gender := strings.TrimSpace(c.PostForm("gender"))
	if name == "" || phone == "" || dob == "" || gender == "" {
		httperr.BadRequest(c, "missing_details", "Name, phone, date of birth and gender are required.")
		return
	}

	p.Name = name
	p.Phone = phone
	p.DOB = dob
	p.Gender = gender
	p.AddressLine1 = strings.TrimSpace(c.PostForm("address_line1"))
	p.AddressLine2 = strings.TrimSpace(c.PostForm("address_line2"))

	oldImage := ""
	if fh, err := c.FormFile("image"); err == nil {
		if h.images == nil {
			httperr.BadRequest(c, "image_upload_disabled", "Image upload is not configured.")
			return
		}
		img, err := uploadImage(ctx, h.images, fh, fmt.Sprintf("patients/%d-%s", p.ID, uuid.NewString()[:8]))
		if err != nil {
			httperr.BadRequest(c, "invalid_image", "The image could not be processed.")
			return
		}
		oldImage = p.ImagePublicID
		p.Image = img.URL
		p.ImagePublicID = img.PublicID
	}

	if err := h.db.WithContext(ctx).Save(&p).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update the profile.")
		return
	}

	if oldImage != "" && oldImage != p.ImagePublicID {
		if err := h.images.Delete(ctx, oldImage); err != nil {
			zap.L().Warn("old patient image not deleted", zap.String("public_id", oldImage), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, p)
}
