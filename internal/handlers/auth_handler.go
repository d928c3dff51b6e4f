package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	clock  timezone.Clock

	// domainCheck is a DNS lookup; tests replace it.
	domainCheck func(string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, clock timezone.Clock) *AuthHandler {
	return &AuthHandler{
		db:          db,
		config:      cfg,
		clock:       clock,
		domainCheck: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Patient ---------

func (h *AuthHandler) RegisterPatient(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_details", "Missing details.")
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmailFormatValid(email) {
		httperr.BadRequest(c, "invalid_email", "Please enter a valid email.")
		return
	}
	if !validators.IsPasswordStrong(req.Password) {
		httperr.BadRequest(c, "weak_password", "Please enter a strong password.")
		return
	}
	if !h.domainCheck(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not look valid.")
		return
	}

	var count int64
	h.db.Model(&models.Patient{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "E-mail already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not register.")
		return
	}

	patient := models.Patient{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := h.db.Create(&patient).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_registered", "E-mail already registered.")
			return
		}
		httperr.Internal(c, "failed_to_create_patient", "Could not register.")
		return
	}

	h.respondToken(c, http.StatusCreated, domain.RolePatient, patient.ID, gin.H{
		"id":    patient.ID,
		"name":  patient.Name,
		"email": patient.Email,
	})
}

func (h *AuthHandler) LoginPatient(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	var patient models.Patient
	if err := h.db.Where("email = ?", validators.NormalizeEmail(req.Email)).First(&patient).Error; err != nil {
		h.loginFailed(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	h.respondToken(c, http.StatusOK, domain.RolePatient, patient.ID, gin.H{
		"id":    patient.ID,
		"name":  patient.Name,
		"email": patient.Email,
	})
}

// --------- Doctor ---------

func (h *AuthHandler) LoginDoctor(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	var doc models.Doctor
	if err := h.db.Where("email = ?", validators.NormalizeEmail(req.Email)).First(&doc).Error; err != nil {
		h.loginFailed(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	h.respondToken(c, http.StatusOK, domain.RoleDoctor, doc.ID, gin.H{
		"id":    doc.ID,
		"name":  doc.Name,
		"email": doc.Email,
		"slug":  doc.Slug,
	})
}

// --------- Admin ---------

// LoginAdmin checks the static credentials from the environment.
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	emailOK := subtle.ConstantTimeCompare(
		[]byte(validators.NormalizeEmail(req.Email)),
		[]byte(validators.NormalizeEmail(h.config.AdminEmail)),
	)
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.config.AdminPassword))

	if emailOK&passOK != 1 {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	h.respondToken(c, http.StatusOK, domain.RoleAdmin, 0, gin.H{"email": h.config.AdminEmail})
}

// --------- JWT ---------

func (h *AuthHandler) loginFailed(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}
	zap.L().Error("login lookup failed", zap.Error(err))
	httperr.Internal(c, "internal_error", "Something went wrong.")
}

func (h *AuthHandler) respondToken(
	c *gin.Context,
	status int,
	role domain.Role,
	id uint,
	user gin.H,
) {
	token, err := middleware.IssueToken(h.config.JWTSecret, role, id, h.clock())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not sign in.")
		return
	}

	c.JSON(status, gin.H{
		"token": token,
		"role":  role,
		"user":  user,
	})
}
