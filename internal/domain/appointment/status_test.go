package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var now = time.Date(2024, time.July, 5, 10, 0, 0, 0, time.UTC)

func TestTransitions_FromBooked(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusBooked)}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != "cancelled" || ap.CancelledAt == nil {
		t.Fatalf("unexpected appointment %+v", ap)
	}

	ap = &models.Appointment{Status: string(StatusBooked)}
	if err := Complete(ap, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != "completed" || ap.CompletedAt == nil {
		t.Fatalf("unexpected appointment %+v", ap)
	}
}

func TestTransitions_TerminalStatesAreFinal(t *testing.T) {
	for _, st := range []Status{StatusCancelled, StatusCompleted} {
		ap := &models.Appointment{Status: string(st)}

		if err := Cancel(ap, now); err != ErrInvalidState {
			t.Errorf("%s: cancel expected invalid_state, got %v", st, err)
		}
		if err := Complete(ap, now); err != ErrInvalidState {
			t.Errorf("%s: complete expected invalid_state, got %v", st, err)
		}
		if err := MoveTo(ap, schedule.CandidateSlot{}, now); err != ErrInvalidState {
			t.Errorf("%s: reschedule expected invalid_state, got %v", st, err)
		}
		if err := MarkPaid(ap, "stripe", "cs_1", now); err != ErrInvalidState {
			t.Errorf("%s: pay expected invalid_state, got %v", st, err)
		}
	}
}

func TestMoveTo_KeepsBooked(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusBooked), SlotDate: "5_7_2024", SlotTime: "09:00 AM"}
	at := time.Date(2024, time.July, 6, 13, 0, 0, 0, time.UTC)

	err := MoveTo(ap, schedule.CandidateSlot{
		DateTime: at,
		Label:    "01:00 PM",
		Date:     schedule.KeyOf(at),
	}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.Status != "booked" {
		t.Errorf("a rescheduled appointment stays booked, got %s", ap.Status)
	}
	if ap.SlotDate != "6_7_2024" || ap.SlotTime != "01:00 PM" || !ap.SlotAt.Equal(at) {
		t.Errorf("unexpected slot %s %s %s", ap.SlotDate, ap.SlotTime, ap.SlotAt)
	}
	if ap.RescheduledAt == nil {
		t.Error("expected rescheduled_at to be set")
	}

	ref, err := SlotOf(ap)
	if err != nil || ref.String() != "6_7_2024 01:00 PM" {
		t.Errorf("unexpected slot ref %v (%v)", ref, err)
	}
}

func TestMarkPaid(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusBooked)}
	if err := MarkPaid(ap, "mercadopago", "123", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ap.Paid || ap.PaymentGateway != "mercadopago" || ap.PaidAt == nil {
		t.Fatalf("unexpected appointment %+v", ap)
	}
	if err := MarkPaid(ap, "mercadopago", "123", now); err != ErrAlreadyPaid {
		t.Fatalf("expected already_paid, got %v", err)
	}
}

func TestOwns(t *testing.T) {
	ap := &models.Appointment{PatientID: 3, DoctorID: 7}

	cases := []struct {
		actor Actor
		want  bool
	}{
		{Actor{Role: RolePatient, ID: 3}, true},
		{Actor{Role: RolePatient, ID: 4}, false},
		{Actor{Role: RoleDoctor, ID: 7}, true},
		{Actor{Role: RoleDoctor, ID: 3}, false},
		{Actor{Role: RoleAdmin}, true},
		{Actor{Role: "guest", ID: 3}, false},
	}
	for _, tc := range cases {
		if got := Owns(tc.actor, ap); got != tc.want {
			t.Errorf("%+v: expected %v, got %v", tc.actor, tc.want, got)
		}
	}
}

func TestWorkingHoursOf(t *testing.T) {
	wh, err := WorkingHoursOf(&models.Doctor{})
	if err != nil || wh != schedule.DefaultWorkingHours {
		t.Fatalf("expected defaults, got %v (%v)", wh, err)
	}

	wh, err = WorkingHoursOf(&models.Doctor{WorkStart: "08:00", WorkEnd: "12:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wh.Start.String() != "08:00" || wh.End.String() != "12:00" {
		t.Fatalf("unexpected hours %v", wh)
	}
}
