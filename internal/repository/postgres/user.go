package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"matchpoint/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	query := `SELECT id, user_name, known_as, password_hash, last_active, created_at
			  FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.UserName, &user.KnownAs, &user.PasswordHash,
		&user.LastActive, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (model.User, error) {
	var user model.User
	query := `SELECT id, user_name, known_as, password_hash, last_active, created_at
			  FROM users WHERE lower(user_name) = lower($1)`

	err := r.db.QueryRow(ctx, query, userName).Scan(
		&user.ID, &user.UserName, &user.KnownAs, &user.PasswordHash,
		&user.LastActive, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by name: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (user_name, known_as, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING id, user_name, known_as, password_hash, last_active, created_at`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.UserName, user.KnownAs, user.PasswordHash,
	).Scan(
		&savedUser.ID, &savedUser.UserName, &savedUser.KnownAs, &savedUser.PasswordHash,
		&savedUser.LastActive, &savedUser.CreatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) TouchLastActive(ctx context.Context, id int64) error {
	const query = `UPDATE users SET last_active = NOW() WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to touch last active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
