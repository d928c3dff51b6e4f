package appointment

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/payment"
)

type fakeGateway struct {
	checkouts []payment.Checkout
	result    payment.Result
}

func (g *fakeGateway) Name() string { return "fake" }

func (g *fakeGateway) CreateCheckout(_ context.Context, c payment.Checkout) (payment.Session, error) {
	g.checkouts = append(g.checkouts, c)
	return payment.Session{Gateway: "fake", Reference: "cs_1", URL: "https://pay.example.com/cs_1"}, nil
}

func (g *fakeGateway) Verify(context.Context, string) (payment.Result, error) {
	return g.result, nil
}

func TestPayment_StartAndVerify(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")
	gw := &fakeGateway{}
	gateways := payment.NewRegistry(gw)

	start := NewStartPayment(f.repo, gateways, "usd", "https://clinic.example.com/")
	sess, err := start.Execute(context.Background(), patientActor, ap.ID, "fake")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.URL == "" || len(gw.checkouts) != 1 {
		t.Fatalf("expected a checkout, got %+v", sess)
	}
	c := gw.checkouts[0]
	if c.Amount != 150 || c.AppointmentID != ap.ID || c.CustomerEmail != "ana@example.com" {
		t.Errorf("unexpected checkout %+v", c)
	}
	if f.repo.appointments[ap.ID].PaymentRef != "cs_1" {
		t.Error("expected the session reference to be stored")
	}

	confirm := NewConfirmPayment(f.repo, gateways, f.clock, nil)

	gw.result = payment.Result{AppointmentID: ap.ID + 1, Paid: true, Reference: "cs_1"}
	if _, err := confirm.Verify(context.Background(), patientActor, ap.ID, "fake", "cs_1"); err != payment.ErrBadReference {
		t.Fatalf("expected a reference mismatch, got %v", err)
	}

	gw.result = payment.Result{AppointmentID: ap.ID, Paid: false, Reference: "cs_1"}
	if _, err := confirm.Verify(context.Background(), patientActor, ap.ID, "fake", "cs_1"); err != payment.ErrNotPaid {
		t.Fatalf("expected payment_not_completed, got %v", err)
	}

	gw.result = payment.Result{AppointmentID: ap.ID, Paid: true, Reference: "cs_1"}
	paid, err := confirm.Verify(context.Background(), patientActor, ap.ID, "fake", "cs_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !paid.Paid || paid.PaidAt == nil || paid.PaymentGateway != "fake" {
		t.Errorf("unexpected appointment %+v", paid)
	}

	_, err = start.Execute(context.Background(), patientActor, ap.ID, "fake")
	if !httperr.IsBusiness(err, "already_paid") {
		t.Fatalf("expected already_paid, got %v", err)
	}
}

func TestPayment_WebhookIsIdempotent(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")
	confirm := NewConfirmPayment(f.repo, payment.NewRegistry(), f.clock, nil)

	res := payment.Result{AppointmentID: ap.ID, Paid: true, Reference: "cs_9"}
	for range 2 {
		got, err := confirm.Apply(context.Background(), payment.GatewayStripe, res)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Paid || got.PaymentRef != "cs_9" {
			t.Fatalf("unexpected appointment %+v", got)
		}
	}
}

func TestPayment_UnknownGateway(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")

	_, err := NewStartPayment(f.repo, payment.NewRegistry(), "usd", "").Execute(context.Background(), patientActor, ap.ID, "razorpay")
	if !httperr.IsBusiness(err, "unknown_gateway") {
		t.Fatalf("expected unknown_gateway, got %v", err)
	}
}
