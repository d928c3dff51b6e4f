package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/payment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// Deps are the process-wide singletons built by the serve command.
// Notifier, Images and Stripe may be nil.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Clock    timezone.Clock
	Log      *zap.Logger
	Registry schedule.Store
	Doctors  *cache.DoctorCache
	Notifier notification.Notifier
	Images   storage.ImageStore
	Gateways payment.Registry
	Stripe   handlers.WebhookParser
	Audit    *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestLogger(d.Log),
		middleware.CORSMiddleware(d.Config.CORSOriginList()),
		middleware.RateLimitMiddleware(d.Config.RateLimitRPS, d.Config.RateLimitBurst),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		appointmentRepo, d.Registry, d.Clock, d.Audit, d.Notifier, d.Log,
	)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo, d.Registry, d.Clock, d.Audit, d.Notifier, d.Log,
	)
	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo, d.Registry, d.Clock, d.Audit, d.Notifier, d.Log,
	)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, d.Clock, d.Audit)
	listUC := ucAppointment.NewListAppointments(appointmentRepo, d.Clock)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, d.Registry, d.Clock)

	startPaymentUC := ucAppointment.NewStartPayment(
		appointmentRepo, d.Gateways, d.Config.Currency, d.Config.FrontendURL,
	)
	confirmPaymentUC := ucAppointment.NewConfirmPayment(
		appointmentRepo, d.Gateways, d.Clock, d.Audit,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config, d.Clock)
	publicHandler := handlers.NewPublicHandler(d.DB, d.Doctors, availabilityUC)
	patientHandler := handlers.NewPatientHandler(d.DB, d.Images)
	doctorHandler := handlers.NewDoctorHandler(d.DB, d.Doctors)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB, d.Doctors)
	adminHandler := handlers.NewAdminHandler(d.DB)
	adminDoctorHandler := handlers.NewAdminDoctorHandler(d.DB, d.Images, d.Doctors, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Clock)
	webhookHandler := handlers.NewWebhookHandler(d.Stripe, confirmPaymentUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		rescheduleUC,
		cancelUC,
		completeUC,
		listUC,
		availabilityUC,
		startPaymentUC,
		confirmPaymentUC,
		d.Clock,
	)

	auth := middleware.AuthMiddleware(d.Config)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICA
		// ------------------------------
		api.GET("/doctors", publicHandler.ListDoctors)
		api.GET("/doctors/:slug", publicHandler.GetDoctor)
		api.GET("/doctors/:slug/slots", publicHandler.Slots)

		api.POST("/payments/stripe/webhook", webhookHandler.Stripe)

		// ------------------------------
		// PACIENTE
		// ------------------------------
		api.POST("/user/register", authHandler.RegisterPatient)
		api.POST("/user/login", authHandler.LoginPatient)

		user := api.Group("/user")
		user.Use(auth, middleware.RequireRole(domain.RolePatient))
		{
			user.GET("/profile", patientHandler.Profile)
			user.PUT("/profile", patientHandler.UpdateProfile)

			user.POST("/appointments", appointmentHandler.Book)
			user.GET("/appointments", appointmentHandler.List)
			user.GET("/appointments/:id", appointmentHandler.Get)
			user.GET("/appointments/:id/slots", appointmentHandler.Slots)
			user.POST("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			user.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
			user.POST("/appointments/:id/pay", appointmentHandler.Pay)
			user.POST("/appointments/:id/verify-payment", appointmentHandler.VerifyPayment)
		}

		// ------------------------------
		// MÉDICO
		// ------------------------------
		api.POST("/doctor/login", authHandler.LoginDoctor)

		doctor := api.Group("/doctor")
		doctor.Use(auth, middleware.RequireRole(domain.RoleDoctor))
		{
			doctor.GET("/dashboard", doctorHandler.Dashboard)
			doctor.GET("/profile", doctorHandler.Profile)
			doctor.PATCH("/profile", doctorHandler.UpdateProfile)

			doctor.GET("/working-hours", workingHoursHandler.Get)
			doctor.PUT("/working-hours", workingHoursHandler.Update)

			doctor.GET("/appointments", appointmentHandler.List)
			doctor.GET("/appointments/month", appointmentHandler.Month)
			doctor.POST("/appointments/:id/complete", appointmentHandler.Complete)
			doctor.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		api.POST("/admin/login", authHandler.LoginAdmin)

		admin := api.Group("/admin")
		admin.Use(auth, middleware.RequireRole(domain.RoleAdmin))
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/patients", adminHandler.Patients)

			admin.POST("/doctors", adminDoctorHandler.Create)
			admin.GET("/doctors", adminDoctorHandler.List)
			admin.DELETE("/doctors/:id", adminDoctorHandler.Delete)
			admin.PATCH("/doctors/:id/fee", adminDoctorHandler.UpdateFee)
			admin.PATCH("/doctors/:id/availability", adminDoctorHandler.UpdateAvailability)

			admin.GET("/appointments", appointmentHandler.List)
			admin.POST("/appointments/:id/cancel", appointmentHandler.Cancel)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
