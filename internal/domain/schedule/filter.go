package schedule

import "iter"

// Available drops the slots already present in booked. exempt, when set, is the
// slot held by the appointment being rescheduled and is always kept.
func Available(slots iter.Seq[CandidateSlot], booked Registry, exempt *SlotRef) iter.Seq[CandidateSlot] {
	return func(yield func(CandidateSlot) bool) {
		for s := range slots {
			ref := s.Ref()
			if booked.Has(ref) && (exempt == nil || *exempt != ref) {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}
