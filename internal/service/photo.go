package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"matchpoint/internal/logger"
	"matchpoint/internal/model"
)

// Photo orchestrates the photo lifecycle: upload to the object store,
// main-photo designation and deletion.
//
// Failure policy: the object store acts before the local record on both
// upload and delete, so a committed record never references an artifact
// whose storage action has not completed. The converse (an artifact with no
// record) can happen and is logged for reconciliation instead of being
// rolled back in-band.
type Photo struct {
	photoStore model.PhotoStore
	userStore  model.UserStore
	storage    model.ObjectStore
	logger     *logger.Logger
}

func NewPhoto(
	photoStore model.PhotoStore,
	userStore model.UserStore,
	storage model.ObjectStore,
	logger *logger.Logger,
) *Photo {
	return &Photo{
		photoStore: photoStore,
		userStore:  userStore,
		storage:    storage,
		logger:     logger,
	}
}

// UploadPhoto stores the image bytes remotely and appends a photo record to
// the owner's collection. The first photo a user uploads becomes the main
// photo; every upload starts unaccepted and waits for moderation.
func (s *Photo) UploadPhoto(ctx context.Context, requesterID, ownerID int64, data []byte, description string) (model.Photo, error) {
	if requesterID != ownerID {
		return model.Photo{}, fmt.Errorf("%w: photos can only be added to own profile", model.ErrUnauthorized)
	}
	if len(data) == 0 {
		return model.Photo{}, fmt.Errorf("%w: empty photo payload", model.ErrInvalidInput)
	}

	owner, err := s.userStore.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Photo{}, model.ErrNotFound
		}
		return model.Photo{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	key := s.generateObjectKey(owner.ID)
	stored, err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), model.ProfilePhotoTransformation)
	if err != nil {
		return model.Photo{}, fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}

	photo := model.Photo{
		OwnerID:     owner.ID,
		URL:         stored.URL,
		PublicID:    &stored.PublicID,
		Description: description,
		IsAccepted:  false,
	}

	// First photo is automatically main; this is the only path by which a
	// fresh user acquires a main photo without moderation.
	_, err = s.photoStore.GetMainForOwner(ctx, owner.ID)
	if errors.Is(err, model.ErrNotFound) {
		photo.IsMain = true
	} else if err != nil {
		return model.Photo{}, fmt.Errorf("failed to get main photo: %w", err)
	}

	savedPhoto, err := s.photoStore.Create(ctx, photo)
	if err != nil {
		// The remote artifact is not rolled back here; the record was never
		// committed, so the orphan is remote-only and harmless to retry over.
		s.logger.Error("photo record creation failed, remote artifact kept",
			"owner_id", owner.ID,
			"public_id", stored.PublicID,
			"error", err.Error())
		return model.Photo{}, fmt.Errorf("%w: %v", model.ErrPersistenceFailed, err)
	}

	return savedPhoto, nil
}

// SetMainPhoto makes the target photo the owner's main photo, demoting the
// current one. The swap commits as a single transaction.
func (s *Photo) SetMainPhoto(ctx context.Context, requesterID, ownerID, photoID int64) error {
	if requesterID != ownerID {
		return fmt.Errorf("%w: can only change own main photo", model.ErrUnauthorized)
	}

	photo, err := s.getOwnedPhoto(ctx, ownerID, photoID)
	if err != nil {
		return err
	}

	if photo.IsMain {
		return fmt.Errorf("%w: photo is already the main photo", model.ErrInvalidState)
	}

	if err := s.photoStore.SetMain(ctx, ownerID, photoID); err != nil {
		return fmt.Errorf("%w: %v", model.ErrPersistenceFailed, err)
	}

	return nil
}

// DeletePhoto removes a photo, deleting the remote artifact first when one
// exists. The main photo cannot be deleted; it must be demoted first.
func (s *Photo) DeletePhoto(ctx context.Context, requesterID, ownerID, photoID int64) error {
	if requesterID != ownerID {
		return fmt.Errorf("%w: can only delete own photos", model.ErrUnauthorized)
	}

	photo, err := s.getOwnedPhoto(ctx, ownerID, photoID)
	if err != nil {
		return err
	}

	return s.removePhoto(ctx, photo)
}

// GetPhoto returns a single photo by id.
func (s *Photo) GetPhoto(ctx context.Context, photoID int64) (model.Photo, error) {
	photo, err := s.photoStore.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Photo{}, model.ErrNotFound
		}
		return model.Photo{}, fmt.Errorf("failed to get photo by id: %w", err)
	}
	return photo, nil
}

// GetPhotosForUser returns the user's photos in insertion order.
func (s *Photo) GetPhotosForUser(ctx context.Context, ownerID int64) ([]model.Photo, error) {
	photos, err := s.photoStore.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photos by owner: %w", err)
	}
	return photos, nil
}

// getOwnedPhoto fetches the photo and verifies ownership. A missing photo
// and an ownership mismatch both come back as ErrUnauthorized so that the
// existence of other users' photo ids is not leaked.
func (s *Photo) getOwnedPhoto(ctx context.Context, ownerID, photoID int64) (model.Photo, error) {
	photo, err := s.photoStore.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Photo{}, fmt.Errorf("%w: photo does not belong to user", model.ErrUnauthorized)
		}
		return model.Photo{}, fmt.Errorf("failed to get photo by id: %w", err)
	}
	if photo.OwnerID != ownerID {
		return model.Photo{}, fmt.Errorf("%w: photo does not belong to user", model.ErrUnauthorized)
	}
	return photo, nil
}

// removePhoto applies the shared delete policy: the local record is dropped
// only after the store confirmed removal, or when no remote artifact exists.
func (s *Photo) removePhoto(ctx context.Context, photo model.Photo) error {
	if photo.IsMain {
		return fmt.Errorf("%w: cannot delete main photo", model.ErrInvalidState)
	}

	if photo.PublicID != nil {
		if err := s.storage.Delete(ctx, *photo.PublicID); err != nil {
			return fmt.Errorf("%w: %v", model.ErrStorageDeleteFailed, err)
		}
	}

	if err := s.photoStore.Delete(ctx, photo.ID); err != nil {
		if errors.Is(err, model.ErrInvalidState) {
			// The photo became main between the ownership read and the record
			// delete; the store refused it, keeping the owner's main photo.
			return fmt.Errorf("%w: cannot delete main photo", model.ErrInvalidState)
		}
		if photo.PublicID != nil {
			// Remote artifact is gone but the record survived. Retrying blindly
			// would re-delete an absent object; flag for manual reconciliation.
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

func (s *Photo) generateObjectKey(ownerID int64) string {
	return fmt.Sprintf("user-%d/photo-%s", ownerID, uuid.NewString())
}
