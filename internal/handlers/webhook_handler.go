package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/payment"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

const maxWebhookBody = 64 << 10

// WebhookParser checks a gateway signature and extracts the payment outcome.
// ok is false for events that carry no payment.
type WebhookParser interface {
	ParseWebhook(payload []byte, signature string) (payment.Result, bool, error)
}

type WebhookHandler struct {
	stripe  WebhookParser
	confirm *ucAppointment.ConfirmPayment
}

// NewWebhookHandler accepts a nil parser when Stripe is not configured.
func NewWebhookHandler(stripe WebhookParser, confirm *ucAppointment.ConfirmPayment) *WebhookHandler {
	return &WebhookHandler{stripe: stripe, confirm: confirm}
}

// ======================================================
// STRIPE
// ======================================================

func (h *WebhookHandler) Stripe(c *gin.Context) {
	if h.stripe == nil {
		httperr.NotFound(c, "gateway_not_configured", "Stripe is not configured.")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.BadRequest(c, "invalid_payload", "Could not read the payload.")
		return
	}

	res, ok, err := h.stripe.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		httperr.BadRequest(c, "invalid_signature", "Invalid webhook signature.")
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if _, err := h.confirm.Apply(c.Request.Context(), payment.GatewayStripe, res); err != nil {
		if httperr.IsNotFound(err) {
			// Nothing to retry for: the appointment is gone.
			zap.L().Warn("webhook for unknown appointment",
				zap.Uint("appointment_id", res.AppointmentID),
				zap.String("reference", res.Reference),
			)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		if httperr.IsBusiness(err, "invalid_state") || httperr.IsBusiness(err, "already_paid") {
			// Cancelled or completed meanwhile: a retry would fail the same way.
			// The charge is left for manual refund.
			zap.L().Warn("webhook payment for closed appointment",
				zap.Uint("appointment_id", res.AppointmentID),
				zap.String("reference", res.Reference),
				zap.Error(err),
			)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
