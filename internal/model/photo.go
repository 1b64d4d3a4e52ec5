package model

import (
	"context"
	"time"
)

// PhotoStore defines persistence operations for photos.
//
// Mutating operations commit in a single transaction. SetMain serializes
// concurrent calls for the same owner, so the read-clear-set sequence of a
// main-photo swap cannot interleave with another swap or delete.
type PhotoStore interface {
	GetByID(ctx context.Context, id int64) (Photo, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]Photo, error)
	GetMainForOwner(ctx context.Context, ownerID int64) (Photo, error)
	GetPendingModeration(ctx context.Context, limit, offset int) ([]PhotoForModeration, error)
	Create(ctx context.Context, photo Photo) (Photo, error)
	SetMain(ctx context.Context, ownerID, photoID int64) error
	SetAccepted(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// Photo represents a stored photo record.
//
// PublicID is the object store identifier of the image artifact; nil means
// the photo has no externally stored artifact (seeded photos) and must never
// be deleted from the object store.
type Photo struct {
	ID          int64
	OwnerID     int64
	URL         string
	PublicID    *string
	Description string
	IsMain      bool
	IsAccepted  bool
	AddedAt     time.Time
}

// PhotoForModeration is the moderation queue row: a photo not yet accepted,
// joined with its owner's name.
type PhotoForModeration struct {
	ID         int64
	OwnerName  string
	URL        string
	IsAccepted bool
}
