package payment

import (
	"context"
	"testing"

	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

type fakeGateway struct{ name string }

func (g fakeGateway) Name() string { return g.name }

func (g fakeGateway) CreateCheckout(context.Context, Checkout) (Session, error) {
	return Session{Gateway: g.name}, nil
}

func (g fakeGateway) Verify(context.Context, string) (Result, error) {
	return Result{}, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(fakeGateway{"stripe"}, fakeGateway{"mercadopago"})

	g, err := r.Get("stripe")
	if err != nil || g.Name() != "stripe" {
		t.Fatalf("expected stripe, got %v (%v)", g, err)
	}

	_, err = r.Get("razorpay")
	if !httperr.IsBusiness(err, "unknown_gateway") {
		t.Fatalf("expected unknown_gateway, got %v", err)
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "mercadopago" || names[1] != "stripe" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestMinorUnits(t *testing.T) {
	cases := map[float64]int64{
		50:    5000,
		19.99: 1999,
		0.1:   10,
		150.5: 15050,
	}
	for in, want := range cases {
		if got := MinorUnits(in); got != want {
			t.Errorf("MinorUnits(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestParseAppointmentID(t *testing.T) {
	if id, err := parseAppointmentID("42"); err != nil || id != 42 {
		t.Fatalf("expected 42, got %d (%v)", id, err)
	}
	for _, bad := range []string{"", "0", "-1", "abc"} {
		if _, err := parseAppointmentID(bad); err != ErrBadReference {
			t.Errorf("%q: expected ErrBadReference, got %v", bad, err)
		}
	}
}

func signed(t *testing.T, secret, payload string) (body []byte, header string) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  secret,
	})
	return sp.Payload, sp.Header
}

func TestStripe_ParseWebhook(t *testing.T) {
	s := NewStripe("sk_test_x", "whsec_test")

	body, header := signed(t, "whsec_test", `{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_1",
			"object": "checkout.session",
			"payment_status": "paid",
			"metadata": {"appointment_id": "7"}
		}}
	}`)

	res, ok, err := s.ParseWebhook(body, header)
	if err != nil || !ok {
		t.Fatalf("expected a payment event, got ok=%v err=%v", ok, err)
	}
	if res.AppointmentID != 7 || !res.Paid || res.Reference != "cs_test_1" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestStripe_ParseWebhookIgnoresOtherEvents(t *testing.T) {
	s := NewStripe("sk_test_x", "whsec_test")

	body, header := signed(t, "whsec_test", `{"id":"evt_2","object":"event","type":"customer.created","data":{"object":{}}}`)

	_, ok, err := s.ParseWebhook(body, header)
	if err != nil || ok {
		t.Fatalf("expected ignored event, got ok=%v err=%v", ok, err)
	}
}

func TestStripe_ParseWebhookRejectsBadSignature(t *testing.T) {
	s := NewStripe("sk_test_x", "whsec_test")

	body, header := signed(t, "whsec_other", `{"id":"evt_3","object":"event","type":"checkout.session.completed","data":{"object":{}}}`)

	if _, _, err := s.ParseWebhook(body, header); err == nil {
		t.Fatal("expected a signature error")
	}
}
