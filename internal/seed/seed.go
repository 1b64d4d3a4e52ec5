package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"matchpoint/internal/logger"
	"matchpoint/internal/model"
)

//go:embed users.json
var userSeedData []byte

type seedUser struct {
	UserName string `json:"userName"`
	KnownAs  string `json:"knownAs"`
	PhotoURL string `json:"photoUrl"`
}

// Seeder populates an empty database with demo users and an admin account.
type Seeder struct {
	userStore  model.UserStore
	photoStore model.PhotoStore
	roleStore  model.RoleStore
	logger     *logger.Logger
}

// New creates a Seeder.
func New(
	userStore model.UserStore,
	photoStore model.PhotoStore,
	roleStore model.RoleStore,
	logger *logger.Logger,
) *Seeder {
	return &Seeder{
		userStore:  userStore,
		photoStore: photoStore,
		roleStore:  roleStore,
		logger:     logger,
	}
}

// Run seeds demo users when none exist yet. Each demo user gets the Member
// role and one pre-accepted main photo without an object store artifact, so
// deleting it never touches the store. The Admin account gets the Admin and
// Moderator roles.
func (s *Seeder) Run(ctx context.Context) error {
	_, err := s.userStore.GetByUserName(ctx, "Admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to check for existing seed data: %w", err)
	}

	var users []seedUser
	if err := json.Unmarshal(userSeedData, &users); err != nil {
		return fmt.Errorf("failed to parse user seed data: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	for _, seedUser := range users {
		user, err := s.userStore.Create(ctx, model.User{
			UserName:     seedUser.UserName,
			KnownAs:      seedUser.KnownAs,
			PasswordHash: hash,
		})
		if err != nil {
			return fmt.Errorf("failed to create seed user %q: %w", seedUser.UserName, err)
		}

		if err := s.roleStore.AddToRoles(ctx, user.ID, []string{model.RoleMember}); err != nil {
			return fmt.Errorf("failed to assign member role to %q: %w", seedUser.UserName, err)
		}

		_, err = s.photoStore.Create(ctx, model.Photo{
			OwnerID:    user.ID,
			URL:        seedUser.PhotoURL,
			PublicID:   nil,
			IsMain:     true,
			IsAccepted: true,
		})
		if err != nil {
			return fmt.Errorf("failed to create seed photo for %q: %w", seedUser.UserName, err)
		}
	}

	admin, err := s.userStore.Create(ctx, model.User{
		UserName:     "Admin",
		PasswordHash: hash,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if err := s.roleStore.AddToRoles(ctx, admin.ID, []string{model.RoleAdmin, model.RoleModerator}); err != nil {
		return fmt.Errorf("failed to assign admin roles: %w", err)
	}

	s.logger.Info("seeded demo data", "users", len(users)+1)

	return nil
}
