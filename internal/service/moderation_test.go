package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matchpoint/internal/model"
	"matchpoint/internal/testutil"
)

func TestModerationService_ListPendingPhotos(t *testing.T) {
	pending := []model.PhotoForModeration{
		{ID: 2, OwnerName: "lisa", URL: "http://store/p-2"},
		{ID: 4, OwnerName: "todd", URL: "http://store/p-4"},
	}

	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "explicit page", limit: 10, offset: 20, wantLimit: 10, wantOffset: 20},
		{name: "defaults applied", limit: 0, offset: -5, wantLimit: DefaultModerationPageSize, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photoStore := &MockPhotoStore{}
			photoStore.On("GetPendingModeration", mock.Anything, tt.wantLimit, tt.wantOffset).Return(pending, nil)

			s := NewModeration(photoStore, &MockObjectStore{}, testutil.MakeNoopLogger())
			photos, err := s.ListPendingPhotos(context.Background(), tt.limit, tt.offset)

			require.NoError(t, err)
			assert.Equal(t, pending, photos)
			photoStore.AssertExpectations(t)
		})
	}
}

func TestModerationService_ApprovePhoto(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(*MockPhotoStore)
		wantErr   error
	}{
		{
			name: "photo not found",
			mockSetup: func(photoStore *MockPhotoStore) {
				photoStore.On("GetByID", mock.Anything, int64(2)).Return(model.Photo{}, model.ErrNotFound)
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "already accepted",
			mockSetup: func(photoStore *MockPhotoStore) {
				photoStore.On("GetByID", mock.Anything, int64(2)).Return(model.Photo{ID: 2, IsAccepted: true}, nil)
			},
			wantErr: model.ErrInvalidState,
		},
		{
			name: "successful approval",
			mockSetup: func(photoStore *MockPhotoStore) {
				photoStore.On("GetByID", mock.Anything, int64(2)).Return(model.Photo{ID: 2}, nil)
				photoStore.On("SetAccepted", mock.Anything, int64(2)).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photoStore := &MockPhotoStore{}
			tt.mockSetup(photoStore)

			s := NewModeration(photoStore, &MockObjectStore{}, testutil.MakeNoopLogger())
			err := s.ApprovePhoto(context.Background(), 2)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			photoStore.AssertExpectations(t)
		})
	}
}

func TestModerationService_RejectPhoto(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockPhotoStore, *MockObjectStore)
		wantErr        error
		wantRecordKept bool
	}{
		{
			name: "main photo cannot be rejected",
			mockSetup: func(photoStore *MockPhotoStore, storage *MockObjectStore) {
				photoStore.On("GetByID", mock.Anything, int64(2)).Return(model.Photo{ID: 2, IsMain: true, PublicID: strPtr("p-2")}, nil)
			},
			wantErr:        model.ErrInvalidState,
			wantRecordKept: true,
		},
		{
			name: "store delete failure keeps local record",
			mockSetup: func(photoStore *MockPhotoStore, storage *MockObjectStore) {
				photoStore.On("GetByID", mock.Anything, int64(2)).Return(model.Photo{ID: 2, PublicID: strPtr("p-2")}, nil)
				storage.On("Delete", mock.Anything, "p-2").Return(errors.New("fail"))
			},
			wantErr:        model.ErrStorageDeleteFailed,
			wantRecordKept: true,
		},
		{
			name: "photo promoted to main before record removal",
			mockSetup: func(photoStore *MockPhotoStore, storage *MockObjectStore) {
				photoStore.On("GetByID", mock.Anything, int64(2)).Return(model.Photo{ID: 2, PublicID: strPtr("p-2")}, nil)
				storage.On("Delete", mock.Anything, "p-2").Return(nil)
				photoStore.On("Delete", mock.Anything, int64(2)).Return(model.ErrInvalidState)
			},
			wantErr: model.ErrInvalidState,
		},
		{
			name: "successful rejection with remote artifact",
			mockSetup: func(photoStore *MockPhotoStore, storage *MockObjectStore) {
				photoStore.On("GetByID", mock.Anything, int64(2)).Return(model.Photo{ID: 2, PublicID: strPtr("p-2")}, nil)
				storage.On("Delete", mock.Anything, "p-2").Return(nil)
				photoStore.On("Delete", mock.Anything, int64(2)).Return(nil)
			},
		},
		{
			name: "seeded photo without artifact skips the store",
			mockSetup: func(photoStore *MockPhotoStore, storage *MockObjectStore) {
				photoStore.On("GetByID", mock.Anything, int64(2)).Return(model.Photo{ID: 2, PublicID: nil}, nil)
				photoStore.On("Delete", mock.Anything, int64(2)).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photoStore := &MockPhotoStore{}
			storage := &MockObjectStore{}
			tt.mockSetup(photoStore, storage)

			s := NewModeration(photoStore, storage, testutil.MakeNoopLogger())
			err := s.RejectPhoto(context.Background(), 2)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			photoStore.AssertExpectations(t)
			storage.AssertExpectations(t)

			if tt.wantRecordKept {
				photoStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
		})
	}
}
