// Package payment starts and verifies appointment payments on external
// checkout providers.
package payment

import (
	"context"
	"math"
	"sort"
	"strconv"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

var (
	ErrUnknownGateway = httperr.ErrBusiness("unknown_gateway")
	ErrNotPaid        = httperr.ErrBusiness("payment_not_completed")
	ErrBadReference   = httperr.ErrBusiness("invalid_payment_reference")
)

// Checkout describes what the patient is asked to pay.
type Checkout struct {
	AppointmentID  uint
	Reference      string
	Description    string
	Amount         float64
	Currency       string
	CustomerEmail  string
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

// Session is a started checkout; the patient is redirected to URL.
type Session struct {
	Gateway   string `json:"gateway"`
	Reference string `json:"reference"`
	URL       string `json:"url"`
}

// Result is what the provider reports for a reference.
type Result struct {
	AppointmentID uint
	Paid          bool
	Reference     string
}

type Gateway interface {
	Name() string
	CreateCheckout(ctx context.Context, c Checkout) (Session, error)
	Verify(ctx context.Context, reference string) (Result, error)
}

// Registry holds the configured gateways by name.
type Registry map[string]Gateway

func NewRegistry(gateways ...Gateway) Registry {
	r := make(Registry, len(gateways))
	for _, g := range gateways {
		r[g.Name()] = g
	}
	return r
}

func (r Registry) Get(name string) (Gateway, error) {
	g, ok := r[name]
	if !ok {
		return nil, ErrUnknownGateway
	}
	return g, nil
}

func (r Registry) Names() []string {
	out := make([]string, 0, len(r))
	for name := range r {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MinorUnits converts an amount to cents.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func parseAppointmentID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrBadReference
	}
	return uint(id), nil
}
