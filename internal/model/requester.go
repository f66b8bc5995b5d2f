package model

type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleUser:
		return true
	}
	return false
}

// Requester is the authenticated caller of a user-facing operation.
type Requester struct {
	ID   int64
	Role Role
}

func (r Requester) Is(role Role) bool { return r.Role == role }
