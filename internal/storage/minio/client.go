package minio

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/minio/minio-go/v7"

	"matchpoint/internal/model"
)

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// Wrapper to adapt *minio.Client to minioAPI.
type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}
func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}
func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}
func (w minioClientWrapper) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return w.c.RemoveObject(ctx, bucketName, objectName, opts)
}

var _ model.ObjectStore = (*Client)(nil)

// Client stores photo artifacts in a MinIO bucket. The rendering
// transformation travels with the object as user metadata and is encoded
// into the public URL, so the image proxy serving the bucket can apply it.
type Client struct {
	api       minioAPI
	bucket    string
	publicURL string
}

// NewClient creates a new MinIO storage client using a real *minio.Client instance.
func NewClient(ctx context.Context, client *minio.Client, bucket, publicURL string) (*Client, error) {
	return NewClientWithAPI(ctx, minioClientWrapper{c: client}, bucket, publicURL)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket, publicURL string) (*Client, error) {
	c := &Client{
		api:       api,
		bucket:    bucket,
		publicURL: publicURL,
	}

	// Ensure bucket exists
	err := c.ensureBucketExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

// ensureBucketExists creates the bucket if it doesn't exist
func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Upload stores the image under key and returns its public identity.
// Success means the artifact is durably stored.
func (c *Client) Upload(ctx context.Context, key string, reader io.Reader, size int64, transform model.Transformation) (model.StoredObject, error) {
	opts := minio.PutObjectOptions{
		ContentType: "image/jpeg",
		UserMetadata: map[string]string{
			"transform-crop":    transform.Crop,
			"transform-gravity": transform.Gravity,
			"transform-width":   strconv.Itoa(transform.Width),
			"transform-height":  strconv.Itoa(transform.Height),
		},
	}

	_, err := c.api.PutObject(ctx, c.bucket, key, reader, size, opts)
	if err != nil {
		return model.StoredObject{}, fmt.Errorf("failed to upload object: %w", err)
	}

	return model.StoredObject{
		PublicID: key,
		URL:      c.objectURL(key, transform),
	}, nil
}

// Delete removes the object identified by publicID. Removing an absent
// object succeeds, so callers can retry a failed delete safely.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	err := c.api.RemoveObject(ctx, c.bucket, publicID, minio.RemoveObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (c *Client) objectURL(key string, transform model.Transformation) string {
	return fmt.Sprintf("%s/%s/%s?c=%s&g=%s&w=%d&h=%d",
		c.publicURL, c.bucket, key,
		transform.Crop, transform.Gravity, transform.Width, transform.Height)
}
