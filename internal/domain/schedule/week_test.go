package schedule

import (
	"testing"
	"time"
)

func TestBuildWeek_SevenDaysInOrder(t *testing.T) {
	now := time.Date(2024, time.July, 29, 8, 0, 0, 0, time.UTC)
	week := BuildWeek(now, DefaultWorkingHours, NewRegistry(), nil)

	if len(week) != DaysAhead {
		t.Fatalf("expected %d days, got %d", DaysAhead, len(week))
	}

	want := []string{"29_7_2024", "30_7_2024", "31_7_2024", "1_8_2024", "2_8_2024", "3_8_2024", "4_8_2024"}
	for i, d := range week {
		if d.Date.String() != want[i] {
			t.Errorf("day %d: expected %s, got %s", i, want[i], d.Date)
		}
		if len(d.Slots) != 28 {
			t.Errorf("day %s: expected 28 slots, got %d", d.Date, len(d.Slots))
		}
		if d.Day.Hour() != 0 {
			t.Errorf("day %s does not start at midnight", d.Date)
		}
	}

	keys := WeekKeys(now)
	for i, k := range keys {
		if k.String() != want[i] {
			t.Errorf("key %d: expected %s, got %s", i, want[i], k)
		}
	}
}

func TestBuildWeek_KeepsEmptyDays(t *testing.T) {
	now := time.Date(2024, time.July, 5, 20, 0, 0, 0, time.UTC)
	booked := NewRegistry()
	for _, s := range Slots(testDay.AddDate(0, 0, 2), DefaultWorkingHours, now) {
		booked.Add(s.Ref())
	}

	week := BuildWeek(now, DefaultWorkingHours, booked, nil)

	if len(week) != DaysAhead {
		t.Fatalf("expected %d days, got %d", DaysAhead, len(week))
	}
	if len(week[0].Slots) != 0 {
		t.Errorf("today is over, expected no slots, got %d", len(week[0].Slots))
	}
	if week[0].Slots == nil {
		t.Error("empty day must carry an empty, non-nil slot list")
	}
	if len(week[2].Slots) != 0 {
		t.Errorf("fully booked day must be empty, got %d", len(week[2].Slots))
	}
	if len(week[1].Slots) != 28 {
		t.Errorf("expected 28 slots tomorrow, got %d", len(week[1].Slots))
	}
}

func TestWeek_Contains(t *testing.T) {
	now := time.Date(2024, time.July, 5, 8, 0, 0, 0, time.UTC)
	week := BuildWeek(now, DefaultWorkingHours, bookedMorning(), nil)

	free := SlotRef{Date: DateKey{Year: 2024, Month: 7, Day: 5}, Time: "09:30 AM"}
	taken := SlotRef{Date: DateKey{Year: 2024, Month: 7, Day: 5}, Time: "09:00 AM"}
	outside := SlotRef{Date: DateKey{Year: 2024, Month: 7, Day: 20}, Time: "09:30 AM"}
	lunch := SlotRef{Date: DateKey{Year: 2024, Month: 7, Day: 6}, Time: "12:15 PM"}

	if !week.Contains(free) {
		t.Error("expected free slot to be offered")
	}
	if week.Contains(taken) {
		t.Error("booked slot must not be offered")
	}
	if week.Contains(outside) {
		t.Error("dates past the window must not be offered")
	}
	if week.Contains(lunch) {
		t.Error("break slots must not be offered")
	}
	if week.Day(outside.Date) != nil {
		t.Error("expected nil day outside the window")
	}
}

func TestWeek_Find(t *testing.T) {
	now := time.Date(2024, time.July, 5, 8, 0, 0, 0, time.UTC)
	week := BuildWeek(now, DefaultWorkingHours, NewRegistry(), nil)

	s, ok := week.Find(SlotRef{Date: DateKey{Year: 2024, Month: 7, Day: 6}, Time: "01:15 PM"})
	if !ok {
		t.Fatal("expected slot to be found")
	}
	want := time.Date(2024, time.July, 6, 13, 15, 0, 0, time.UTC)
	if !s.DateTime.Equal(want) {
		t.Fatalf("expected %s, got %s", want, s.DateTime)
	}
}
