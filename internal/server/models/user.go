package models

import (
	"slices"
	"strings"
	"time"
)

// Role is the coarse permission category attached to a user.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleSecretary Role = "SECRETARY"
	RoleUser      Role = "USER"
)

// Roles lists the closed role enumeration.
func Roles() []Role {
	return []Role{RoleAdmin, RoleSecretary, RoleUser}
}

// IsValid reports whether r belongs to the role enumeration.
func (r Role) IsValid() bool {
	return slices.Contains(Roles(), r)
}

// ParseRole maps a role name to a Role. Matching ignores case and
// surrounding blanks; anything outside the enumeration is rejected.
func ParseRole(name string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(name)))
	return r, r.IsValid()
}

// User is an identity record. Email is the natural key.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	Email string
	Role  Role
}
