// models/role.go
package models

import "fmt"

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleCoach  Role = "Coach"
	RolePlayer Role = "Player"
	RoleUser   Role = "User"
)

var roles = map[Role]struct{}{
	RoleAdmin:  {},
	RoleCoach:  {},
	RolePlayer: {},
	RoleUser:   {},
}

func (r Role) Valid() bool {
	_, ok := roles[r]
	return ok
}

// ParseRole accepts the exact role names used in tokens and request bodies.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// In reports whether r is one of allowed.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
