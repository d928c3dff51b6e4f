package appointment

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"

	// RoleSystem acts for gateway callbacks and CLI jobs.
	RoleSystem Role = "system"
)

// Actor is whoever triggers an operation.
type Actor struct {
	Role Role
	ID   uint
}

func (a Actor) IDPtr() *uint {
	if a.ID == 0 {
		return nil
	}
	id := a.ID
	return &id
}
