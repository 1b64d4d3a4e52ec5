package model

import "slices"

// Identity is the authenticated caller: user ID plus capability-bearing roles.
type Identity struct {
	UserID int64
	Roles  []string
}

// HasRole reports whether the identity holds the given role.
func (i Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

// TokenManager issues and validates access tokens.
type TokenManager interface {
	Generate(userID int64, roles []string) (string, error)
	Parse(tokenString string) (Identity, error)
}
