package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

var businessMessages = map[string]string{
	"slot_unavailable":          "Slot not available.",
	"select_different_slot":     "Please select a different slot.",
	"invalid_state":             "The appointment can no longer be changed.",
	"appointment_changed":       "The appointment was changed by another request.",
	"already_paid":              "The appointment is already paid.",
	"not_authorized":            "Not authorized.",
	"doctor_unavailable":        "Doctor not available.",
	"invalid_slot_date":         "Invalid slot date.",
	"invalid_slot_time":         "Invalid slot time.",
	"invalid_working_hours":     "Start time must be before end time.",
	"invalid_time_of_day":       "Times must use the HH:MM format.",
	"invalid_month":             "Invalid year or month.",
	"unknown_gateway":           "Unknown payment gateway.",
	"payment_not_completed":     "Payment not completed.",
	"invalid_payment_reference": "Invalid payment reference.",
}

// mapBusinessError translates a use case error to an HTTP response.
// Errors without a business code are logged and reported as 500.
func mapBusinessError(c *gin.Context, err error) {
	code, ok := httperr.CodeOf(err)
	if !ok {
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	msg := businessMessages[code]
	if msg == "" {
		msg = strings.ReplaceAll(code, "_", " ")
	}

	switch {
	case code == "slot_unavailable", code == "appointment_changed":
		httperr.Conflict(c, code, msg)
	case code == "select_different_slot":
		httperr.Unprocessable(c, code, msg)
	case httperr.IsNotFound(err):
		httperr.NotFound(c, code, msg)
	case code == "not_authorized":
		httperr.Forbidden(c, code, msg)
	default:
		httperr.Write(c, http.StatusBadRequest, code, msg)
	}
}
