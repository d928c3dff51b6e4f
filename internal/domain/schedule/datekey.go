package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateKey identifies a calendar date in a booked-slot registry.
type DateKey struct {
	Year  int
	Month int
	Day   int
}

// KeyOf returns the key of t's wall-clock date.
func KeyOf(t time.Time) DateKey {
	return DateKey{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ParseDateKey reads the stored "D_M_YYYY" format. Zero padded parts are
// accepted and normalised, so "05_07_2024" and "5_7_2024" are the same key.
func ParseDateKey(s string) (DateKey, error) {
	parts := strings.Split(strings.TrimSpace(s), "_")
	if len(parts) != 3 {
		return DateKey{}, ErrInvalidDateKey
	}

	nums := [3]int{}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return DateKey{}, ErrInvalidDateKey
		}
		nums[i] = n
	}

	k := DateKey{Year: nums[2], Month: nums[1], Day: nums[0]}
	if !k.valid() {
		return DateKey{}, ErrInvalidDateKey
	}
	return k, nil
}

func (k DateKey) valid() bool {
	if k.Month < 1 || k.Month > 12 || k.Day < 1 {
		return false
	}
	t := time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.UTC)
	return t.Day() == k.Day && int(t.Month()) == k.Month
}

// String renders the legacy format: day and month are never zero padded.
func (k DateKey) String() string {
	return fmt.Sprintf("%d_%d_%d", k.Day, k.Month, k.Year)
}

// Slashed renders "D/M/YYYY", the format used in notifications.
func (k DateKey) Slashed() string {
	return fmt.Sprintf("%d/%d/%d", k.Day, k.Month, k.Year)
}

// In returns midnight of the key's date in loc.
func (k DateKey) In(loc *time.Location) time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, loc)
}

func (k DateKey) IsZero() bool {
	return k == DateKey{}
}

// SlotRef points to one slot of one date.
type SlotRef struct {
	Date DateKey
	Time string
}

// NewSlotRef parses and normalises both halves of a slot coming from the
// outside (request bodies, stored appointments).
func NewSlotRef(date, label string) (SlotRef, error) {
	k, err := ParseDateKey(date)
	if err != nil {
		return SlotRef{}, err
	}
	l, err := NormalizeLabel(label)
	if err != nil {
		return SlotRef{}, err
	}
	return SlotRef{Date: k, Time: l}, nil
}

func (r SlotRef) String() string {
	return r.Date.String() + " " + r.Time
}
