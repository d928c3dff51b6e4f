package appointment

import (
	"context"
	"testing"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

func rescheduleInput(id uint, date, label string) RescheduleAppointmentInput {
	return RescheduleAppointmentInput{
		Actor:         patientActor,
		AppointmentID: id,
		SlotDate:      date,
		SlotTime:      label,
	}
}

func TestReschedule_SwapsSlots(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")

	moved, err := f.reschedule().Execute(context.Background(), rescheduleInput(ap.ID, "6_7_2024", "01:00 PM"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if moved.SlotDate != "6_7_2024" || moved.SlotTime != "01:00 PM" || moved.Status != "booked" {
		t.Errorf("unexpected appointment %+v", moved)
	}
	if moved.RescheduledAt == nil {
		t.Error("expected rescheduled_at")
	}
	if f.store.has(doctorID, "5_7_2024", "09:00 AM") {
		t.Error("old slot must be released")
	}
	if !f.store.has(doctorID, "6_7_2024", "01:00 PM") {
		t.Error("new slot must be reserved")
	}

	last := f.notifier.events[len(f.notifier.events)-1]
	if last.Kind != notification.KindRescheduled || last.OldDate != "5/7/2024" || last.OldTime != "09:00 AM" {
		t.Errorf("unexpected notification %+v", last)
	}
}

func TestReschedule_SameDate(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")

	if _, err := f.reschedule().Execute(context.Background(), rescheduleInput(ap.ID, "5_7_2024", "09:15 AM")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.store.has(doctorID, "5_7_2024", "09:00 AM") || !f.store.has(doctorID, "5_7_2024", "09:15 AM") {
		t.Fatal("expected the swap to happen within the same date")
	}
}

func TestReschedule_SameSlotIsRejected(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")

	_, err := f.reschedule().Execute(context.Background(), rescheduleInput(ap.ID, "05_07_2024", "9:00 AM"))
	if !httperr.IsBusiness(err, "select_different_slot") {
		t.Fatalf("expected select_different_slot, got %v", err)
	}
	if !f.store.has(doctorID, "5_7_2024", "09:00 AM") {
		t.Fatal("current slot must stay reserved")
	}
}

func TestReschedule_TakenSlotLeavesRegistryUntouched(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")
	f.store.reserve(doctorID, "5_7_2024", "10:00 AM")

	_, err := f.reschedule().Execute(context.Background(), rescheduleInput(ap.ID, "5_7_2024", "10:00 AM"))
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
	if !f.store.has(doctorID, "5_7_2024", "09:00 AM") {
		t.Fatal("current slot must stay reserved")
	}
	stored := f.repo.appointments[ap.ID]
	if stored.SlotTime != "09:00 AM" {
		t.Fatalf("appointment must not move, got %s", stored.SlotTime)
	}
}

func TestReschedule_RevertsRegistryWhenUpdateFails(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")
	f.repo.updateErr = errDB

	_, err := f.reschedule().Execute(context.Background(), rescheduleInput(ap.ID, "6_7_2024", "01:00 PM"))
	if err != errDB {
		t.Fatalf("expected db error, got %v", err)
	}
	if !f.store.has(doctorID, "5_7_2024", "09:00 AM") {
		t.Error("old slot must be reserved again")
	}
	if f.store.has(doctorID, "6_7_2024", "01:00 PM") {
		t.Error("new slot must be released again")
	}
}

func TestReschedule_LosingConcurrentMoveReleasesOnlyItsSlot(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")

	// another request moves the appointment to 10:00 while this one is in flight
	f.repo.beforeMove = func() {
		f.repo.beforeMove = nil
		winner, err := f.reschedule().Execute(context.Background(), rescheduleInput(ap.ID, "5_7_2024", "10:00 AM"))
		if err != nil {
			t.Fatalf("concurrent reschedule failed: %v", err)
		}
		if winner.SlotTime != "10:00 AM" {
			t.Fatalf("unexpected winner %+v", winner)
		}
	}

	_, err := f.reschedule().Execute(context.Background(), rescheduleInput(ap.ID, "6_7_2024", "01:00 PM"))
	if !httperr.IsBusiness(err, "appointment_changed") {
		t.Fatalf("expected appointment_changed, got %v", err)
	}

	stored := f.repo.appointments[ap.ID]
	if stored.SlotDate != "5_7_2024" || stored.SlotTime != "10:00 AM" {
		t.Fatalf("the winner's move must stand, got %s %s", stored.SlotDate, stored.SlotTime)
	}
	if !f.store.has(doctorID, "5_7_2024", "10:00 AM") {
		t.Error("the winner's slot must stay reserved")
	}
	if f.store.has(doctorID, "6_7_2024", "01:00 PM") {
		t.Error("the loser's slot must be released")
	}
	if f.store.has(doctorID, "5_7_2024", "09:00 AM") {
		t.Error("the original slot must not be reserved again")
	}
}

func TestReschedule_Ownership(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")

	in := rescheduleInput(ap.ID, "6_7_2024", "01:00 PM")
	in.Actor = domain.Actor{Role: domain.RolePatient, ID: otherID}

	_, err := f.reschedule().Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestReschedule_CancelledAppointment(t *testing.T) {
	f := newFixture()
	ap := f.mustBook("5_7_2024", "09:00 AM")
	if _, err := f.cancel().Execute(context.Background(), patientActor, ap.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := f.reschedule().Execute(context.Background(), rescheduleInput(ap.ID, "6_7_2024", "01:00 PM"))
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}
