package schedule

import "time"

// DaysAhead is the size of the booking window, today included.
const DaysAhead = 7

// DaySlots is the availability of one date. Slots may be empty; the entry is
// still present so day tabs line up with their content.
type DaySlots struct {
	Date  DateKey         `json:"-"`
	Day   time.Time       `json:"day"`
	Slots []CandidateSlot `json:"slots"`
}

// Week is the availability from today to today+6, in order.
type Week []DaySlots

// WeekKeys returns the date keys covered by the week starting at now.
func WeekKeys(now time.Time) []DateKey {
	keys := make([]DateKey, 0, DaysAhead)
	for i := range DaysAhead {
		keys = append(keys, KeyOf(now.AddDate(0, 0, i)))
	}
	return keys
}

// BuildWeek generates and filters the slots of the next DaysAhead days.
func BuildWeek(now time.Time, wh WorkingHours, booked Registry, exempt *SlotRef) Week {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	week := make(Week, 0, DaysAhead)
	for i := range DaysAhead {
		day := today.AddDate(0, 0, i)
		week = append(week, DaySlots{
			Date:  KeyOf(day),
			Day:   day,
			Slots: collect(Available(Generate(day, wh, now), booked, exempt)),
		})
	}
	return week
}

// Day returns the slots of k, or nil when k is outside the week.
func (w Week) Day(k DateKey) *DaySlots {
	for i := range w {
		if w[i].Date == k {
			return &w[i]
		}
	}
	return nil
}

// Find returns the offered slot matching ref.
func (w Week) Find(ref SlotRef) (CandidateSlot, bool) {
	d := w.Day(ref.Date)
	if d == nil {
		return CandidateSlot{}, false
	}
	for _, s := range d.Slots {
		if s.Label == ref.Time {
			return s, true
		}
	}
	return CandidateSlot{}, false
}

// Contains reports whether ref is currently offered.
func (w Week) Contains(ref SlotRef) bool {
	_, ok := w.Find(ref)
	return ok
}
