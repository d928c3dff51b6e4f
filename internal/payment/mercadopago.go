package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const GatewayMercadoPago = "mercadopago"

type MercadoPago struct {
	preferences preference.Client
	payments    payment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) Name() string { return GatewayMercadoPago }

func (m *MercadoPago) CreateCheckout(ctx context.Context, c Checkout) (Session, error) {
	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         c.Reference,
				Title:      c.Description,
				Quantity:   1,
				UnitPrice:  c.Amount,
				CurrencyID: strings.ToUpper(c.Currency),
			},
		},
		ExternalReference: strconv.FormatUint(uint64(c.AppointmentID), 10),
		BackURLs: &preference.BackURLsRequest{
			Success: c.SuccessURL,
			Failure: c.CancelURL,
			Pending: c.CancelURL,
		},
		AutoReturn: "approved",
	}
	if c.CustomerEmail != "" {
		req.Payer = &preference.PayerRequest{Email: c.CustomerEmail}
	}

	pref, err := m.preferences.Create(ctx, req)
	if err != nil {
		return Session{}, fmt.Errorf("mercadopago preference: %w", err)
	}

	return Session{Gateway: GatewayMercadoPago, Reference: pref.ID, URL: pref.InitPoint}, nil
}

// Verify looks up a payment id, as returned on the back URL.
func (m *MercadoPago) Verify(ctx context.Context, reference string) (Result, error) {
	paymentID, err := strconv.Atoi(reference)
	if err != nil {
		return Result{}, ErrBadReference
	}

	p, err := m.payments.Get(ctx, paymentID)
	if err != nil {
		return Result{}, fmt.Errorf("mercadopago payment: %w", err)
	}

	id, err := parseAppointmentID(p.ExternalReference)
	if err != nil {
		return Result{}, err
	}
	return Result{
		AppointmentID: id,
		Paid:          p.Status == "approved",
		Reference:     reference,
	}, nil
}

var _ Gateway = (*MercadoPago)(nil)
