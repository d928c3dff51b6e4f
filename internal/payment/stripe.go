package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const GatewayStripe = "stripe"

type Stripe struct {
	api           *client.API
	webhookSecret string
}

func NewStripe(secretKey, webhookSecret string) *Stripe {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Stripe{api: api, webhookSecret: webhookSecret}
}

func (s *Stripe) Name() string { return GatewayStripe }

func (s *Stripe) CreateCheckout(ctx context.Context, c Checkout) (Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(c.SuccessURL),
		CancelURL:         stripe.String(c.CancelURL),
		ClientReferenceID: stripe.String(c.Reference),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(c.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(c.Description),
					},
					UnitAmount: stripe.Int64(MinorUnits(c.Amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if c.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(c.CustomerEmail)
	}
	params.AddMetadata("appointment_id", strconv.FormatUint(uint64(c.AppointmentID), 10))
	params.Context = ctx
	if c.IdempotencyKey != "" {
		params.SetIdempotencyKey(c.IdempotencyKey)
	}

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return Session{}, fmt.Errorf("stripe checkout: %w", err)
	}

	return Session{Gateway: GatewayStripe, Reference: sess.ID, URL: sess.URL}, nil
}

// Verify looks up a checkout session id.
func (s *Stripe) Verify(ctx context.Context, reference string) (Result, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := s.api.CheckoutSessions.Get(reference, params)
	if err != nil {
		return Result{}, fmt.Errorf("stripe session: %w", err)
	}
	return sessionResult(sess)
}

// ParseWebhook checks the signature and returns the result of a completed
// checkout. ok is false for event types that carry no payment.
func (s *Stripe) ParseWebhook(payload []byte, signature string) (res Result, ok bool, err error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return Result{}, false, err
	}

	if event.Type != "checkout.session.completed" {
		return Result{}, false, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return Result{}, false, fmt.Errorf("decode session: %w", err)
	}

	res, err = sessionResult(&sess)
	if err != nil {
		return Result{}, false, err
	}
	return res, true, nil
}

func sessionResult(sess *stripe.CheckoutSession) (Result, error) {
	id, err := parseAppointmentID(sess.Metadata["appointment_id"])
	if err != nil {
		return Result{}, err
	}
	return Result{
		AppointmentID: id,
		Paid:          sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Reference:     sess.ID,
	}, nil
}

var _ Gateway = (*Stripe)(nil)
