package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book         *ucAppointment.BookAppointment
	reschedule   *ucAppointment.RescheduleAppointment
	cancel       *ucAppointment.CancelAppointment
	complete     *ucAppointment.CompleteAppointment
	list         *ucAppointment.ListAppointments
	availability *ucAppointment.GetAvailability
	startPayment *ucAppointment.StartPayment
	confirm      *ucAppointment.ConfirmPayment
	clock        timezone.Clock
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	reschedule *ucAppointment.RescheduleAppointment,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	list *ucAppointment.ListAppointments,
	availability *ucAppointment.GetAvailability,
	startPayment *ucAppointment.StartPayment,
	confirm *ucAppointment.ConfirmPayment,
	clock timezone.Clock,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:         book,
		reschedule:   reschedule,
		cancel:       cancel,
		complete:     complete,
		list:         list,
		availability: availability,
		startPayment: startPayment,
		confirm:      confirm,
		clock:        clock,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookRequest struct {
	DoctorID uint   `json:"doctor_id" binding:"required"`
	SlotDate string `json:"slot_date" binding:"required"`
	SlotTime string `json:"slot_time" binding:"required"`
}

type RescheduleRequest struct {
	SlotDate string `json:"slot_date" binding:"required"`
	SlotTime string `json:"slot_time" binding:"required"`
}

type PayRequest struct {
	Gateway string `json:"gateway" binding:"required"`
}

type VerifyPaymentRequest struct {
	Gateway   string `json:"gateway" binding:"required"`
	Reference string `json:"reference" binding:"required"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_details", "Doctor, date and time are required.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		PatientID: actor.ID,
		DoctorID:  req.DoctorID,
		SlotDate:  req.SlotDate,
		SlotTime:  req.SlotTime,
	})
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap))
}

// ======================================================
// LIST / DETAILS
// ======================================================

// List serves patients, doctors and admins; the use case scopes the result.
func (h *AppointmentHandler) List(c *gin.Context) {
	apps, err := h.list.ForActor(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		mapBusinessError(c, err)
		return
	}
	httpresp.List(c, apps)
}

func (h *AppointmentHandler) Month(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	year, month, ok := yearMonth(c, h.clock())
	if !ok {
		return
	}

	apps, err := h.list.ByMonth(c.Request.Context(), actor.ID, year, month)
	if err != nil {
		mapBusinessError(c, err)
		return
	}
	httpresp.List(c, apps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.list.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		mapBusinessError(c, err)
		return
	}
	httpresp.OK(c, dto.FromAppointment(ap))
}

// Slots is the week offered for rescheduling; the appointment's own slot is
// included.
func (h *AppointmentHandler) Slots(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	week, err := h.availability.ForAppointment(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		mapBusinessError(c, err)
		return
	}
	httpresp.List(c, dto.FromWeek(week))
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_details", "Date and time are required.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		Actor:         middleware.ActorFrom(c),
		AppointmentID: id,
		SlotDate:      req.SlotDate,
		SlotTime:      req.SlotTime,
	})
	if err != nil {
		mapBusinessError(c, err)
		return
	}
	httpresp.OK(c, dto.FromAppointment(ap))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		mapBusinessError(c, err)
		return
	}
	httpresp.OK(c, dto.FromAppointment(ap))
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		mapBusinessError(c, err)
		return
	}
	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// PAYMENT
// ======================================================

func (h *AppointmentHandler) Pay(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_gateway", "Payment gateway is required.")
		return
	}

	sess, err := h.startPayment.Execute(c.Request.Context(), middleware.ActorFrom(c), id, req.Gateway)
	if err != nil {
		mapBusinessError(c, err)
		return
	}
	httpresp.OK(c, sess)
}

func (h *AppointmentHandler) VerifyPayment(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_details", "Gateway and reference are required.")
		return
	}

	ap, err := h.confirm.Verify(c.Request.Context(), middleware.ActorFrom(c), id, req.Gateway, req.Reference)
	if err != nil {
		mapBusinessError(c, err)
		return
	}
	httpresp.OK(c, dto.FromAppointment(ap))
}
