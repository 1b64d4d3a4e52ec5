package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"matchpoint/internal/logger"
	"matchpoint/internal/model"
)

// Admin manages role assignments. The caller's admin capability is enforced
// by the transport layer.
type Admin struct {
	userStore model.UserStore
	roleStore model.RoleStore
	logger    *logger.Logger
}

func NewAdmin(
	userStore model.UserStore,
	roleStore model.RoleStore,
	logger *logger.Logger,
) *Admin {
	return &Admin{
		userStore: userStore,
		roleStore: roleStore,
		logger:    logger,
	}
}

// EditRoles reconciles the user's role set with the requested one. Additions
// apply first; removals are only attempted after all additions succeeded.
// The two phases are not one transaction: a removal failure leaves the
// already-applied additions in effect and surfaces as ErrRoleUpdateFailed.
//
// The returned role set is re-read after both phases and reflects the true
// current state even when the error is non-nil.
func (s *Admin) EditRoles(ctx context.Context, userName string, roleNames []string) ([]string, error) {
	user, err := s.userStore.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}

	currentRoles, err := s.roleStore.GetForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get current roles: %w", err)
	}

	// Absent role list means "no roles", not "no change".
	selectedRoles := roleNames
	if selectedRoles == nil {
		selectedRoles = []string{}
	}

	toAdd := difference(selectedRoles, currentRoles)
	toRemove := difference(currentRoles, selectedRoles)

	if err := s.roleStore.AddToRoles(ctx, user.ID, toAdd); err != nil {
		return nil, fmt.Errorf("%w: failed to add to roles: %v", model.ErrRoleUpdateFailed, err)
	}

	var removeErr error
	if err := s.roleStore.RemoveFromRoles(ctx, user.ID, toRemove); err != nil {
		removeErr = fmt.Errorf("%w: failed to remove from roles: %v", model.ErrRoleUpdateFailed, err)
	}

	resultingRoles, err := s.roleStore.GetForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resulting roles: %w", err)
	}

	return resultingRoles, removeErr
}

// GetUsersWithRoles lists every user with its role set, ordered by name.
func (s *Admin) GetUsersWithRoles(ctx context.Context) ([]model.UserWithRoles, error) {
	users, err := s.roleStore.GetUsersWithRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users with roles: %w", err)
	}

	return users, nil
}

// difference returns the distinct elements of a not present in b, preserving order.
func difference(a, b []string) []string {
	var out []string
	for _, item := range a {
		if !slices.Contains(b, item) && !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}
