package schedule

import (
	"iter"
	"time"
)

// CandidateSlot is one bookable slot. It is rebuilt on every query and never
// stored.
type CandidateSlot struct {
	DateTime time.Time `json:"datetime"`
	Label    string    `json:"time"`
	Date     DateKey   `json:"-"`
}

// Ref returns the registry reference of the slot.
func (s CandidateSlot) Ref() SlotRef {
	return SlotRef{Date: s.Date, Time: s.Label}
}

// Generate yields the slots of day inside wh, skipping the lunch break and
// everything before now. now is rounded up to the slot granularity on its
// minute component (seconds are dropped, aligned minutes stay put). Days that
// already ended yield nothing, as do windows where Start >= End.
//
// The sequence is lazy and can be ranged over any number of times; for a
// fixed now it always yields the same slots.
func Generate(day time.Time, wh WorkingHours, now time.Time) iter.Seq[CandidateSlot] {
	return func(yield func(CandidateSlot) bool) {
		loc := day.Location()

		dayStart := ceilToSlot(wh.Start.On(day))
		dayEnd := wh.End.On(day)
		breakStart := BreakStart.On(day)
		breakEnd := BreakEnd.On(day)

		cursor := dayStart
		if from := ceilToSlot(now.In(loc)); from.After(cursor) {
			cursor = from
		}

		for cursor.Before(dayEnd) {
			if !cursor.Before(breakStart) && cursor.Before(breakEnd) {
				cursor = breakEnd
				continue
			}

			slot := CandidateSlot{
				DateTime: cursor,
				Label:    Label(cursor),
				Date:     KeyOf(cursor),
			}
			if !yield(slot) {
				return
			}

			cursor = cursor.Add(SlotGranularity)
		}
	}
}

// Slots collects Generate into a slice. The result is never nil.
func Slots(day time.Time, wh WorkingHours, now time.Time) []CandidateSlot {
	return collect(Generate(day, wh, now))
}

func collect(seq iter.Seq[CandidateSlot]) []CandidateSlot {
	out := make([]CandidateSlot, 0, 32)
	for s := range seq {
		out = append(out, s)
	}
	return out
}

func ceilToSlot(t time.Time) time.Time {
	step := int(SlotGranularity / time.Minute)

	minute := t.Minute()
	if r := minute % step; r != 0 {
		minute += step - r
	}

	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}
