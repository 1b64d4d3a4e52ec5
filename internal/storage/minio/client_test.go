package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matchpoint/internal/model"
)

// MockMinioAPI mocks the minioAPI interface
type MockMinioAPI struct {
	mock.Mock
}

func (m *MockMinioAPI) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinioAPI) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

func (m *MockMinioAPI) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *MockMinioAPI) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

func newTestClient(t *testing.T, api *MockMinioAPI) *Client {
	t.Helper()
	api.On("BucketExists", mock.Anything, "photos").Return(true, nil).Once()

	c, err := NewClientWithAPI(context.Background(), api, "photos", "http://localhost:9000")
	require.NoError(t, err)
	return c
}

func TestNewClientWithAPI_CreatesMissingBucket(t *testing.T) {
	api := &MockMinioAPI{}
	api.On("BucketExists", mock.Anything, "photos").Return(false, nil)
	api.On("MakeBucket", mock.Anything, "photos", mock.Anything).Return(nil)

	_, err := NewClientWithAPI(context.Background(), api, "photos", "http://localhost:9000")

	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestNewClientWithAPI_BucketCheckFails(t *testing.T) {
	api := &MockMinioAPI{}
	api.On("BucketExists", mock.Anything, "photos").Return(false, errors.New("connection refused"))

	_, err := NewClientWithAPI(context.Background(), api, "photos", "http://localhost:9000")

	assert.Error(t, err)
	api.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestClient_Upload(t *testing.T) {
	api := &MockMinioAPI{}
	c := newTestClient(t, api)

	payload := bytes.NewReader([]byte("image bytes"))
	api.On("PutObject", mock.Anything, "photos", "user-7/photo-abc", payload, int64(11),
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.UserMetadata["transform-crop"] == "fill" &&
				opts.UserMetadata["transform-gravity"] == "face" &&
				opts.UserMetadata["transform-width"] == "500" &&
				opts.UserMetadata["transform-height"] == "500"
		})).Return(minio.UploadInfo{Key: "user-7/photo-abc"}, nil)

	stored, err := c.Upload(context.Background(), "user-7/photo-abc", payload, 11, model.ProfilePhotoTransformation)

	require.NoError(t, err)
	assert.Equal(t, "user-7/photo-abc", stored.PublicID)
	assert.Equal(t, "http://localhost:9000/photos/user-7/photo-abc?c=fill&g=face&w=500&h=500", stored.URL)
	api.AssertExpectations(t)
}

func TestClient_Upload_Failure(t *testing.T) {
	api := &MockMinioAPI{}
	c := newTestClient(t, api)

	api.On("PutObject", mock.Anything, "photos", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("write failed"))

	_, err := c.Upload(context.Background(), "user-7/photo-abc", bytes.NewReader(nil), 0, model.ProfilePhotoTransformation)

	assert.Error(t, err)
}

func TestClient_Delete(t *testing.T) {
	tests := []struct {
		name      string
		removeErr error
		wantErr   bool
	}{
		{name: "successful delete", removeErr: nil, wantErr: false},
		{name: "absent object is not an error", removeErr: minio.ErrorResponse{Code: "NoSuchKey"}, wantErr: false},
		{name: "store failure propagates", removeErr: errors.New("connection reset"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &MockMinioAPI{}
			c := newTestClient(t, api)

			api.On("RemoveObject", mock.Anything, "photos", "user-7/photo-abc", mock.Anything).Return(tt.removeErr)

			err := c.Delete(context.Background(), "user-7/photo-abc")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			api.AssertExpectations(t)
		})
	}
}
