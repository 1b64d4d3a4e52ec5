package model

import (
	"context"
	"io"
)

// Transformation describes how the object store renders an uploaded image.
type Transformation struct {
	Width   int
	Height  int
	Crop    string
	Gravity string
}

// ProfilePhotoTransformation is the fixed policy applied to every profile
// photo upload: a square crop centered on the detected face region.
var ProfilePhotoTransformation = Transformation{
	Width:   500,
	Height:  500,
	Crop:    "fill",
	Gravity: "face",
}

// StoredObject identifies an artifact held by the object store.
type StoredObject struct {
	PublicID string
	URL      string
}

// ObjectStore abstracts the external binary-object store.
//
// Upload is durable on success. Delete returns nil only when the store
// confirmed removal; deleting an absent artifact succeeds, so a failed
// delete can be retried safely.
type ObjectStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, transform Transformation) (StoredObject, error)
	Delete(ctx context.Context, publicID string) error
}
