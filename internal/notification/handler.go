package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Handler processes TypeEmailSend tasks.
type Handler struct {
	mailer Mailer
	log    *zap.Logger
}

func NewHandler(mailer Mailer, log *zap.Logger) *Handler {
	return &Handler{mailer: mailer, log: log}
}

func (h *Handler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var ev Event
	if err := json.Unmarshal(t.Payload(), &ev); err != nil {
		h.log.Error("invalid e-mail payload", zap.Error(err))
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	return h.Deliver(ctx, ev)
}

// Deliver renders ev and sends every resulting e-mail.
func (h *Handler) Deliver(ctx context.Context, ev Event) error {
	emails, err := Render(ev)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	var errs []error
	for _, e := range emails {
		if err := h.mailer.Send(ctx, e); err != nil {
			h.log.Warn("e-mail not sent",
				zap.String("kind", string(ev.Kind)),
				zap.Uint("appointment_id", ev.AppointmentID),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ asynq.Handler = (*Handler)(nil)
