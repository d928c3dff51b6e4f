package handlers

import (
	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

// doctorEvent records an admin change to a doctor account.
func doctorEvent(
	actor domain.Actor,
	action string,
	doctorID uint,
	meta any,
) audit.Event {

	id := doctorID
	return audit.Event{
		ActorRole: string(actor.Role),
		ActorID:   actor.IDPtr(),
		DoctorID:  &id,
		Action:    action,
		Entity:    "doctor",
		EntityID:  &id,
		Metadata:  meta,
	}
}
