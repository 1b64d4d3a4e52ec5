package service

import (
	"context"
	"errors"
	"fmt"

	"matchpoint/internal/logger"
	"matchpoint/internal/model"
)

// DefaultModerationPageSize bounds a moderation queue page when the caller
// does not ask for a specific size.
const DefaultModerationPageSize = 50

// Moderation reviews uploaded photos. The caller's moderation capability is
// enforced by the transport layer; the service trusts it.
type Moderation struct {
	photoStore model.PhotoStore
	storage    model.ObjectStore
	logger     *logger.Logger
}

func NewModeration(
	photoStore model.PhotoStore,
	storage model.ObjectStore,
	logger *logger.Logger,
) *Moderation {
	return &Moderation{
		photoStore: photoStore,
		storage:    storage,
		logger:     logger,
	}
}

// ListPendingPhotos returns a page of photos awaiting moderation, over all
// owners. Ordering is stable (added_at, id), so paging is restartable.
func (s *Moderation) ListPendingPhotos(ctx context.Context, limit, offset int) ([]model.PhotoForModeration, error) {
	if limit <= 0 {
		limit = DefaultModerationPageSize
	}
	if offset < 0 {
		offset = 0
	}

	photos, err := s.photoStore.GetPendingModeration(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending photos: %w", err)
	}

	return photos, nil
}

// ApprovePhoto marks a pending photo as accepted.
func (s *Moderation) ApprovePhoto(ctx context.Context, photoID int64) error {
	photo, err := s.getPhoto(ctx, photoID)
	if err != nil {
		return err
	}

	if photo.IsAccepted {
		return fmt.Errorf("%w: photo is already accepted", model.ErrInvalidState)
	}

	if err := s.photoStore.SetAccepted(ctx, photoID); err != nil {
		return fmt.Errorf("%w: %v", model.ErrPersistenceFailed, err)
	}

	return nil
}

// RejectPhoto removes a pending photo, with the same object-store
// coordination as an owner-initiated delete: the record is dropped only
// after the store confirmed artifact removal, or when no artifact exists.
// A main photo cannot be rejected; the owner must demote it first.
func (s *Moderation) RejectPhoto(ctx context.Context, photoID int64) error {
	photo, err := s.getPhoto(ctx, photoID)
	if err != nil {
		return err
	}

	if photo.IsMain {
		return fmt.Errorf("%w: cannot reject main photo", model.ErrInvalidState)
	}

	if photo.PublicID != nil {
		if err := s.storage.Delete(ctx, *photo.PublicID); err != nil {
			return fmt.Errorf("%w: %v", model.ErrStorageDeleteFailed, err)
		}
	}

	if err := s.photoStore.Delete(ctx, photoID); err != nil {
		if errors.Is(err, model.ErrInvalidState) {
			// Promoted to main between the moderation read and the record
			// delete; the store refused it.
			return fmt.Errorf("%w: cannot reject main photo", model.ErrInvalidState)
		}
		if photo.PublicID != nil {
			s.logger.Error("photo record removal failed after confirmed object store delete, manual reconciliation required",
				"photo_id", photo.ID,
				"owner_id", photo.OwnerID,
				"public_id", *photo.PublicID,
				"error", err.Error())
		}
		return fmt.Errorf("%w: %v", model.ErrPersistenceFailed, err)
	}

	return nil
}

func (s *Moderation) getPhoto(ctx context.Context, photoID int64) (model.Photo, error) {
	photo, err := s.photoStore.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Photo{}, model.ErrNotFound
		}
		return model.Photo{}, fmt.Errorf("failed to get photo by id: %w", err)
	}
	return photo, nil
}
