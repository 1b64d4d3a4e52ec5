package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUserName(ctx context.Context, userName string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	TouchLastActive(ctx context.Context, id int64) error
}

// User represents a registered user. A user owns its photo set; photos refer
// back to the owner through Photo.OwnerID only.
type User struct {
	ID           int64
	UserName     string
	KnownAs      string
	PasswordHash []byte
	LastActive   time.Time
	CreatedAt    time.Time
}
