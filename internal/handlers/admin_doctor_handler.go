package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AdminDoctorHandler struct {
	db     *gorm.DB
	images storage.ImageStore
	cache  *cache.DoctorCache
	audit  *audit.Dispatcher

	domainCheck func(string) bool
}

func NewAdminDoctorHandler(
	db *gorm.DB,
	images storage.ImageStore,
	doctors *cache.DoctorCache,
	auditDispatcher *audit.Dispatcher,
) *AdminDoctorHandler {
	return &AdminDoctorHandler{
		db:          db,
		images:      images,
		cache:       doctors,
		audit:       auditDispatcher,
		domainCheck: validators.IsEmailDomainValid,
	}
}

type FeeRequest struct {
	Fees *float64 `json:"fees" binding:"required"`
}

type AvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

var errSlugTaken = errors.New("no free slug")

// ======================================================
// CREATE
// ======================================================

// Create adds a doctor from a multipart form. The image is mandatory when a
// storage driver is configured.
func (h *AdminDoctorHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.ActorFrom(c)

	form := func(k string) string { return strings.TrimSpace(c.PostForm(k)) }

	name := form("name")
	email := validators.NormalizeEmail(c.PostForm("email"))
	password := c.PostForm("password")
	speciality := form("speciality")
	degree := form("degree")
	experience := form("experience")
	about := form("about")
	feesRaw := form("fees")

	if name == "" || email == "" || password == "" || speciality == "" ||
		degree == "" || experience == "" || about == "" || feesRaw == "" {
		httperr.BadRequest(c, "missing_details", "Missing details.")
		return
	}

	if !validators.IsEmailFormatValid(email) {
		httperr.BadRequest(c, "invalid_email", "Please enter a valid email.")
		return
	}
	if !validators.IsPasswordStrong(password) {
		httperr.BadRequest(c, "weak_password", "Please enter a strong password.")
		return
	}
	if !h.domainCheck(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not look valid.")
		return
	}

	fees, err := strconv.ParseFloat(feesRaw, 64)
	if err != nil || fees < 0 {
		httperr.BadRequest(c, "invalid_fees", "Invalid fees.")
		return
	}

	wh, err := schedule.ParseWorkingHours(form("work_start"), form("work_end"))
	if err == nil {
		err = wh.Validate()
	}
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	fh, fileErr := c.FormFile("image")
	if h.images != nil && fileErr != nil {
		httperr.BadRequest(c, "image_required", "Doctor image is required.")
		return
	}

	var count int64
	h.db.WithContext(ctx).Model(&models.Doctor{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "E-mail already registered.")
		return
	}

	docSlug, err := h.uniqueSlug(c, name)
	if err != nil {
		httperr.Internal(c, "failed_to_create_doctor", "Could not add the doctor.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not add the doctor.")
		return
	}

	doc := models.Doctor{
		Name:         name,
		Slug:         docSlug,
		Email:        email,
		PasswordHash: string(hashed),
		Speciality:   speciality,
		Degree:       degree,
		Experience:   experience,
		About:        about,
		Fees:         fees,
		AddressLine1: form("address_line1"),
		AddressLine2: form("address_line2"),
		Available:    true,
		WorkStart:    wh.Start.String(),
		WorkEnd:      wh.End.String(),
	}

	if h.images != nil && fh != nil {
		img, err := uploadImage(ctx, h.images, fh, "doctors/"+docSlug)
		if err != nil {
			httperr.BadRequest(c, "invalid_image", "The image could not be processed.")
			return
		}
		doc.Image = img.URL
		doc.ImagePublicID = img.PublicID
	}

	if err := h.db.WithContext(ctx).Create(&doc).Error; err != nil {
		h.dropImage(c, doc.ImagePublicID)
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_registered", "E-mail already registered.")
			return
		}
		httperr.Internal(c, "failed_to_create_doctor", "Could not add the doctor.")
		return
	}

	h.audit.Dispatch(doctorEvent(actor, audit.ActionDoctorAdded, doc.ID, map[string]any{
		"slug":       doc.Slug,
		"speciality": doc.Speciality,
	}))
	h.invalidate(c)

	httpresp.Created(c, doc)
}

// uniqueSlug appends -2, -3... until the slug is free.
func (h *AdminDoctorHandler) uniqueSlug(c *gin.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "doctor"
	}

	for i := 1; i <= 50; i++ {
		candidate := base
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}

		var count int64
		if err := h.db.WithContext(c.Request.Context()).
			Model(&models.Doctor{}).
			Where("slug = ?", candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", errSlugTaken
}

// ======================================================
// LIST / DELETE
// ======================================================

func (h *AdminDoctorHandler) List(c *gin.Context) {
	var docs []models.Doctor
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&docs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Could not list doctors.")
		return
	}
	httpresp.List(c, docs)
}

// Delete refuses while the doctor still has booked appointments.
func (h *AdminDoctorHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.ActorFrom(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var doc models.Doctor
	if err := h.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		h.doctorLookupFailed(c, err)
		return
	}

	var pending int64
	if err := h.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND status = ?", doc.ID, string(domain.StatusBooked)).
		Count(&pending).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_doctor", "Could not remove the doctor.")
		return
	}
	if pending > 0 {
		httperr.Conflict(c, "doctor_has_appointments", "The doctor still has booked appointments.")
		return
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doc.ID).Delete(&models.BookedSlot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&doc).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_doctor", "Could not remove the doctor.")
		return
	}

	h.dropImage(c, doc.ImagePublicID)
	h.audit.Dispatch(doctorEvent(actor, audit.ActionDoctorRemove, doc.ID, map[string]any{
		"slug": doc.Slug,
	}))
	h.invalidate(c)

	httpresp.OK(c, gin.H{"deleted": doc.ID})
}

// ======================================================
// FEE / AVAILABILITY
// ======================================================

func (h *AdminDoctorHandler) UpdateFee(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req FeeRequest
	if err := c.ShouldBindJSON(&req); err != nil || *req.Fees < 0 {
		httperr.BadRequest(c, "invalid_fees", "Invalid fees.")
		return
	}

	h.updateDoctor(c, id, "fees", *req.Fees)
}

// UpdateAvailability toggles whether new bookings are accepted. Existing
// appointments are untouched.
func (h *AdminDoctorHandler) UpdateAvailability(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "available is required.")
		return
	}

	h.updateDoctor(c, id, "available", *req.Available)
}

func (h *AdminDoctorHandler) updateDoctor(c *gin.Context, id uint, column string, value any) {
	ctx := c.Request.Context()

	res := h.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_doctor", "Could not update the doctor.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	var doc models.Doctor
	if err := h.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		h.doctorLookupFailed(c, err)
		return
	}

	h.invalidate(c)
	httpresp.OK(c, doc)
}

// ------------------------------------------------------

func (h *AdminDoctorHandler) doctorLookupFailed(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}
	httperr.Internal(c, "internal_error", "Something went wrong.")
}

func (h *AdminDoctorHandler) dropImage(c *gin.Context, publicID string) {
	if h.images == nil || publicID == "" {
		return
	}
	if err := h.images.Delete(c.Request.Context(), publicID); err != nil {
		zap.L().Warn("doctor image not deleted", zap.String("public_id", publicID), zap.Error(err))
	}
}

func (h *AdminDoctorHandler) invalidate(c *gin.Context) {
	if err := h.cache.Invalidate(c.Request.Context()); err != nil {
		zap.L().Warn("doctor cache invalidation failed", zap.Error(err))
	}
}
