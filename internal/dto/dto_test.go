package dto

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestFromWeek_KeepsEmptyDays(t *testing.T) {
	now := time.Date(2024, time.July, 5, 16, 50, 0, 0, time.UTC)
	week := schedule.BuildWeek(now, schedule.DefaultWorkingHours, schedule.NewRegistry(), nil)

	days := FromWeek(week)
	if len(days) != schedule.DaysAhead {
		t.Fatalf("expected %d days, got %d", schedule.DaysAhead, len(days))
	}
	if days[0].SlotDate != "5_7_2024" || days[0].Weekday != "FRI" {
		t.Errorf("unexpected first day %+v", days[0])
	}
	if days[0].Slots == nil || len(days[0].Slots) != 0 {
		t.Errorf("today is over, expected an empty non-nil slot list, got %v", days[0].Slots)
	}
	if len(days[1].Slots) != 28 || days[1].Slots[0].Time != "09:00 AM" {
		t.Errorf("unexpected second day %+v", days[1])
	}
}

func TestFromAppointments(t *testing.T) {
	apps := []models.Appointment{
		{ID: 1, Reference: "APT-1", Doctor: models.Doctor{Name: "Rui"}, Patient: models.Patient{Name: "Ana"}},
	}
	out := FromAppointments(apps)
	if len(out) != 1 || out[0].Doctor.Name != "Rui" || out[0].Patient.Name != "Ana" {
		t.Fatalf("unexpected dto %+v", out)
	}
	if got := FromAppointments(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected an empty list, got %v", got)
	}
}
