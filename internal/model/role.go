package model

import "context"

const (
	// RoleMember is the default role assigned at registration.
	RoleMember = "Member"
	// RoleAdmin grants the role administration capability.
	RoleAdmin = "Admin"
	// RoleModerator grants the photo moderation capability.
	RoleModerator = "Moderator"
	// RoleVIP is a plain membership tier with no extra capability.
	RoleVIP = "VIP"
)

// RoleStore defines persistence operations for role assignments.
//
// AddToRoles and RemoveFromRoles are deliberately separate calls, not one
// transaction: a role edit applies additions first and removals second, and a
// failure between the two phases leaves the additions in effect.
type RoleStore interface {
	GetForUser(ctx context.Context, userID int64) ([]string, error)
	AddToRoles(ctx context.Context, userID int64, roles []string) error
	RemoveFromRoles(ctx context.Context, userID int64, roles []string) error
	GetUsersWithRoles(ctx context.Context) ([]UserWithRoles, error)
}

// UserWithRoles is the admin listing row for a user and its role set.
type UserWithRoles struct {
	ID       int64
	UserName string
	Roles    []string
}
