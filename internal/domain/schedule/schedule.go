// Package schedule generates bookable slots for a doctor and decides whether a
// booking or a reschedule may take a given slot.
//
// Everything here is pure: the current instant and the doctor's configuration
// are always passed in by the caller.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// SlotGranularity is the length of every slot. Slot boundaries are multiples
// of it counted from midnight.
const SlotGranularity = 15 * time.Minute

// The lunch break is the same for every doctor and every day.
var (
	BreakStart = Clock{Hour: 12, Minute: 0}
	BreakEnd   = Clock{Hour: 13, Minute: 0}
)

var (
	ErrSlotUnavailable = httperr.ErrBusiness("slot_unavailable")
	ErrNoOpReschedule  = httperr.ErrBusiness("select_different_slot")
	ErrInvalidClock    = httperr.ErrBusiness("invalid_time_of_day")
	ErrInvalidDateKey  = httperr.ErrBusiness("invalid_slot_date")
	ErrInvalidLabel    = httperr.ErrBusiness("invalid_slot_time")
	ErrInvalidHours    = httperr.ErrBusiness("invalid_working_hours")
)

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24h). Single digit hours are accepted.
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(m) != 2 {
		return Clock{}, ErrInvalidClock
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, ErrInvalidClock
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, ErrInvalidClock
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns the minutes elapsed since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// On places the clock on the calendar date of day, in day's location.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// WorkingHours is the daily window in which a doctor takes appointments.
type WorkingHours struct {
	Start Clock
	End   Clock
}

// DefaultWorkingHours applies to doctors that never configured their hours.
var DefaultWorkingHours = WorkingHours{
	Start: Clock{Hour: 9, Minute: 0},
	End:   Clock{Hour: 17, Minute: 0},
}

// ParseWorkingHours builds WorkingHours from the stored "HH:MM" strings. Empty
// values fall back to DefaultWorkingHours. Start >= End is accepted here; the
// generator simply yields nothing for such a window.
func ParseWorkingHours(start, end string) (WorkingHours, error) {
	wh := DefaultWorkingHours
	if strings.TrimSpace(start) != "" {
		c, err := ParseClock(start)
		if err != nil {
			return WorkingHours{}, err
		}
		wh.Start = c
	}
	if strings.TrimSpace(end) != "" {
		c, err := ParseClock(end)
		if err != nil {
			return WorkingHours{}, err
		}
		wh.End = c
	}
	return wh, nil
}

// Validate is used when a doctor saves a new configuration.
func (wh WorkingHours) Validate() error {
	if wh.Start.Minutes() >= wh.End.Minutes() {
		return ErrInvalidHours
	}
	return nil
}
