package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"matchpoint/internal/logger"
	"matchpoint/internal/model"
)

// Auth registers users and issues access tokens.
type Auth struct {
	userStore    model.UserStore
	roleStore    model.RoleStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	roleStore model.RoleStore,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		roleStore:    roleStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register creates a user with the Member role and returns it with a token.
func (a *Auth) Register(ctx context.Context, userName, knownAs, password string) (model.User, string, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" || password == "" {
		return model.User{}, "", fmt.Errorf("%w: user name and password are required", model.ErrInvalidInput)
	}

	_, err := a.userStore.GetByUserName(ctx, userName)
	if err == nil {
		return model.User{}, "", fmt.Errorf("%w: user name is taken", model.ErrInvalidInput)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, "", fmt.Errorf("failed to get user by name: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		UserName:     userName,
		KnownAs:      knownAs,
		PasswordHash: hash,
	})
	if err != nil {
		return model.User{}, "", fmt.Errorf("%w: %v", model.ErrPersistenceFailed, err)
	}

	if err := a.roleStore.AddToRoles(ctx, user.ID, []string{model.RoleMember}); err != nil {
		return model.User{}, "", fmt.Errorf("%w: failed to assign member role: %v", model.ErrRoleUpdateFailed, err)
	}

	tokenString, err := a.tokenManager.Generate(user.ID, []string{model.RoleMember})
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, tokenString, nil
}

// Login verifies credentials and returns the user with a token carrying its
// role claims.
func (a *Auth) Login(ctx context.Context, userName, password string) (model.User, string, error) {
	user, err := a.userStore.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, "", fmt.Errorf("%w: invalid credentials", model.ErrUnauthorized)
		}
		return model.User{}, "", fmt.Errorf("failed to get user by name: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return model.User{}, "", fmt.Errorf("%w: invalid credentials", model.ErrUnauthorized)
	}

	roles, err := a.roleStore.GetForUser(ctx, user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get roles: %w", err)
	}

	tokenString, err := a.tokenManager.Generate(user.ID, roles)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, tokenString, nil
}
