package appointment

import (
	"context"
	"testing"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

var doctorActor = domain.Actor{Role: domain.RoleDoctor, ID: doctorID}

func TestCancel_ReleasesSlot(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")

	got, err := f.cancel().Execute(context.Background(), patientActor, ap.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != "cancelled" || got.CancelledAt == nil {
		t.Errorf("unexpected appointment %+v", got)
	}
	if f.store.has(doctorID, "5_7_2024", "09:00 AM") {
		t.Error("slot must be free again")
	}

	last := f.notifier.events[len(f.notifier.events)-1]
	if last.Kind != notification.KindCancelled || !last.NotifyDoctor {
		t.Errorf("patient cancellation must notify the doctor, got %+v", last)
	}

	// The freed slot can be booked again.
	f.mustBook("5_7_2024", "09:00 AM")

	_, err = f.cancel().Execute(context.Background(), patientActor, ap.ID)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state on second cancel, got %v", err)
	}
}

func TestCancel_ByDoctorDoesNotMailDoctor(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")

	if _, err := f.cancel().Execute(context.Background(), doctorActor, ap.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := f.notifier.events[len(f.notifier.events)-1]
	if last.NotifyDoctor {
		t.Error("doctor cancelling must not be mailed about it")
	}
}

func TestCancel_OtherDoctor(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")

	_, err := f.cancel().Execute(context.Background(), domain.Actor{Role: domain.RoleDoctor, ID: 99}, ap.ID)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")
	uc := NewCompleteAppointment(f.repo, f.clock, nil)

	if _, err := uc.Execute(context.Background(), patientActor, ap.ID); err != ErrNotAuthorized {
		t.Fatalf("expected not_authorized for a patient, got %v", err)
	}

	got, err := uc.Execute(context.Background(), doctorActor, ap.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != "completed" || got.CompletedAt == nil {
		t.Errorf("unexpected appointment %+v", got)
	}
	if !f.store.has(doctorID, "5_7_2024", "09:00 AM") {
		t.Error("completed appointments keep their slot")
	}

	if _, err := f.cancel().Execute(context.Background(), doctorActor, ap.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("completed appointments cannot be cancelled, got %v", err)
	}
}

func TestAvailability_ForAppointmentKeepsOwnSlot(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")
	uc := NewGetAvailability(f.repo, f.store, f.clock)

	week, err := uc.ForDoctor(context.Background(), doctorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if week.Contains(mustRef("5_7_2024", "09:00 AM")) {
		t.Error("booked slot must not be offered to new bookings")
	}
	if len(week) != 7 || len(week[0].Slots) != 27 {
		t.Errorf("expected 7 days and 27 free slots today, got %d / %d", len(week), len(week[0].Slots))
	}

	week, err = uc.ForAppointment(context.Background(), patientActor, ap.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !week.Contains(mustRef("5_7_2024", "09:00 AM")) {
		t.Error("the appointment's own slot must be offered when rescheduling")
	}
}

func TestAvailability_UnavailableDoctor(t *testing.T) {
	f := newFixture()
	doc := f.repo.doctors[doctorID]
	doc.Available = false
	f.repo.doctors[doctorID] = doc

	_, err := NewGetAvailability(f.repo, f.store, f.clock).ForDoctor(context.Background(), doctorID)
	if !httperr.IsBusiness(err, "doctor_unavailable") {
		t.Fatalf("expected doctor_unavailable, got %v", err)
	}
}

func TestList(t *testing.T) {
	f := newFixture()
	f.mustBook("5_7_2024", "09:00 AM")
	f.mustBook("8_7_2024", "02:00 PM")
	uc := NewListAppointments(f.repo, f.clock)

	mine, err := uc.ForActor(context.Background(), patientActor)
	if err != nil || len(mine) != 2 {
		t.Fatalf("expected 2 appointments, got %d (%v)", len(mine), err)
	}

	other, _ := uc.ForActor(context.Background(), domain.Actor{Role: domain.RolePatient, ID: otherID})
	if len(other) != 0 {
		t.Errorf("expected no appointments for another patient, got %d", len(other))
	}

	july, err := uc.ByMonth(context.Background(), doctorID, 2024, 7)
	if err != nil || len(july) != 2 {
		t.Fatalf("expected 2 appointments in July, got %d (%v)", len(july), err)
	}
	august, _ := uc.ByMonth(context.Background(), doctorID, 2024, 8)
	if len(august) != 0 {
		t.Errorf("expected none in August, got %d", len(august))
	}

	if _, err := uc.ByMonth(context.Background(), doctorID, 2024, 13); !httperr.IsBusiness(err, "invalid_month") {
		t.Errorf("expected invalid_month, got %v", err)
	}
}
