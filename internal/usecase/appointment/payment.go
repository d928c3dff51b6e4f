package appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/payment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// START
// ======================================================

type StartPayment struct {
	repo        domain.Repository
	gateways    payment.Registry
	currency    string
	frontendURL string
}

func NewStartPayment(
	repo domain.Repository,
	gateways payment.Registry,
	currency string,
	frontendURL string,
) *StartPayment {
	return &StartPayment{
		repo:        repo,
		gateways:    gateways,
		currency:    currency,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

func (uc *StartPayment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	gatewayName string,
) (payment.Session, error) {

	gw, err := uc.gateways.Get(gatewayName)
	if err != nil {
		return payment.Session{}, err
	}

	ap, err := load(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return payment.Session{}, err
	}
	if err := domain.CanPay(domain.Status(ap.Status), ap.Paid); err != nil {
		return payment.Session{}, err
	}

	back := fmt.Sprintf("%s/my-appointments?appointment=%d", uc.frontendURL, ap.ID)

	sess, err := gw.CreateCheckout(ctx, payment.Checkout{
		AppointmentID:  ap.ID,
		Reference:      ap.Reference,
		Description:    fmt.Sprintf("Appointment %s with Dr. %s", ap.Reference, ap.Doctor.Name),
		Amount:         ap.Amount,
		Currency:       uc.currency,
		CustomerEmail:  ap.Patient.Email,
		SuccessURL:     back + "&payment=success",
		CancelURL:      back + "&payment=cancelled",
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return payment.Session{}, err
	}

	ap.PaymentGateway = gw.Name()
	ap.PaymentRef = sess.Reference
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return payment.Session{}, err
	}

	return sess, nil
}

// ======================================================
// CONFIRM
// ======================================================

type ConfirmPayment struct {
	repo     domain.Repository
	gateways payment.Registry
	clock    timezone.Clock
	audit    *audit.Dispatcher
}

func NewConfirmPayment(
	repo domain.Repository,
	gateways payment.Registry,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:     repo,
		gateways: gateways,
		clock:    clock,
		audit:    audit,
	}
}

// Verify asks the gateway about reference after the patient comes back from
// the checkout page.
func (uc *ConfirmPayment) Verify(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	gatewayName string,
	reference string,
) (*models.Appointment, error) {

	gw, err := uc.gateways.Get(gatewayName)
	if err != nil {
		return nil, err
	}

	ap, err := load(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.Paid {
		return ap, nil
	}

	res, err := gw.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}
	if res.AppointmentID != ap.ID {
		return nil, payment.ErrBadReference
	}
	if !res.Paid {
		return nil, payment.ErrNotPaid
	}

	return uc.markPaid(ctx, actor, ap, gw.Name(), res.Reference)
}

// Apply records a payment pushed by a gateway webhook. Repeated deliveries
// are accepted.
func (uc *ConfirmPayment) Apply(
	ctx context.Context,
	gatewayName string,
	res payment.Result,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, res.AppointmentID)
	if err != nil {
		return nil, err
	}
	if ap.Paid || !res.Paid {
		return ap, nil
	}

	return uc.markPaid(ctx, domain.Actor{Role: domain.RoleSystem}, ap, gatewayName, res.Reference)
}

func (uc *ConfirmPayment) markPaid(
	ctx context.Context,
	actor domain.Actor,
	ap *models.Appointment,
	gateway string,
	reference string,
) (*models.Appointment, error) {

	if err := domain.MarkPaid(ap, gateway, reference, uc.clock()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(appointmentEvent(actor, ap, audit.ActionPaid, map[string]string{
		"gateway":   gateway,
		"reference": reference,
	}))

	return ap, nil
}
