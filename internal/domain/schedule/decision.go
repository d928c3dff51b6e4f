package schedule

// Mutation is what a successful booking or reschedule asks the registry store
// to write for one doctor.
type Mutation struct {
	DoctorID uint
	Release  *SlotRef
	Reserve  SlotRef
}

// Reverse undoes m. It is used to compensate when the appointment itself could
// not be saved after the registry was updated.
//
// Reversing a plain booking gives a release-only mutation; callers apply it
// with Store.Release.
func (m Mutation) Reverse() (Mutation, bool) {
	if m.Release == nil {
		return Mutation{}, false
	}
	reserved := m.Reserve
	return Mutation{
		DoctorID: m.DoctorID,
		Release:  &reserved,
		Reserve:  *m.Release,
	}, true
}

// Decide validates selected against the current week and returns the
// mutation to apply. existing is the slot currently held by the appointment
// being rescheduled, nil for a new booking.
//
// The week must have been built with existing as its exempt slot.
func Decide(doctorID uint, selected SlotRef, week Week, existing *SlotRef) (Mutation, error) {
	if existing != nil && *existing == selected {
		return Mutation{}, ErrNoOpReschedule
	}

	if !week.Contains(selected) {
		return Mutation{}, ErrSlotUnavailable
	}

	m := Mutation{DoctorID: doctorID, Reserve: selected}
	if existing != nil {
		release := *existing
		m.Release = &release
	}
	return m, nil
}
