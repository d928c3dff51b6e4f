package schedule

import (
	"context"
	"sort"
)

// Registry holds the slots already reserved for one doctor, by date.
// The zero value is not usable; use NewRegistry.
type Registry struct {
	days map[DateKey]map[string]struct{}
}

func NewRegistry() Registry {
	return Registry{days: make(map[DateKey]map[string]struct{})}
}

// FromLegacy reads the stored shape: "D_M_YYYY" -> ["09:00 AM", ...].
// Keys and labels are normalised; entries that cannot be parsed are skipped.
func FromLegacy(m map[string][]string) Registry {
	r := NewRegistry()
	for date, labels := range m {
		k, err := ParseDateKey(date)
		if err != nil {
			continue
		}
		for _, l := range labels {
			if n, err := NormalizeLabel(l); err == nil {
				r.Add(SlotRef{Date: k, Time: n})
			}
		}
	}
	return r
}

// Legacy renders the registry back to the stored shape. Empty days are omitted.
func (r Registry) Legacy() map[string][]string {
	out := make(map[string][]string, len(r.days))
	for k, set := range r.days {
		if len(set) == 0 {
			continue
		}
		labels := make([]string, 0, len(set))
		for l := range set {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		out[k.String()] = labels
	}
	return out
}

func (r Registry) Has(ref SlotRef) bool {
	_, ok := r.days[ref.Date][ref.Time]
	return ok
}

func (r Registry) Add(ref SlotRef) {
	set, ok := r.days[ref.Date]
	if !ok {
		set = make(map[string]struct{})
		r.days[ref.Date] = set
	}
	set[ref.Time] = struct{}{}
}

func (r Registry) Remove(ref SlotRef) {
	set, ok := r.days[ref.Date]
	if !ok {
		return
	}
	delete(set, ref.Time)
	if len(set) == 0 {
		delete(r.days, ref.Date)
	}
}

// Day returns the reserved labels of one date. The returned map must not be
// modified.
func (r Registry) Day(k DateKey) map[string]struct{} {
	return r.days[k]
}

// Store persists registries. Implementations must make Apply atomic: the
// reserve half only succeeds when the slot is still free, and release and
// reserve are written together or not at all.
type Store interface {
	// Booked returns the reserved slots of the given dates.
	Booked(ctx context.Context, doctorID uint, keys []DateKey) (Registry, error)

	// Apply writes a mutation. A taken reserve slot yields ErrSlotUnavailable
	// and leaves the registry untouched.
	Apply(ctx context.Context, m Mutation) error

	// Release frees a slot. Freeing a slot that is not reserved is not an error.
	Release(ctx context.Context, doctorID uint, ref SlotRef) error
}
