package domain

import "time"

// Role enumerates the permission roles a user may hold.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleITSupport Role = "ITSupport"
	RoleUser      Role = "User"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleITSupport, RoleUser:
		return true
	}
	return false
}

// User is a helpdesk account. Users are created once and never mutated;
// the username is unique across the store.
type User struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
