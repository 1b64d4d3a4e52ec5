package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"matchpoint/internal/api/http/middleware"
	"matchpoint/internal/logger"
	"matchpoint/internal/model"
)

// PhotoService defines business operations for the photo lifecycle.
type PhotoService interface {
	UploadPhoto(ctx context.Context, requesterID, ownerID int64, data []byte, description string) (model.Photo, error)
	SetMainPhoto(ctx context.Context, requesterID, ownerID, photoID int64) error
	DeletePhoto(ctx context.Context, requesterID, ownerID, photoID int64) error
	GetPhoto(ctx context.Context, photoID int64) (model.Photo, error)
	GetPhotosForUser(ctx context.Context, ownerID int64) ([]model.Photo, error)
}

// Photo handles HTTP endpoints for a user's photos.
type Photo struct {
	photoService PhotoService
	logger       *logger.Logger
}

// NewPhoto creates a new Photo handler.
func NewPhoto(photoService PhotoService, logger *logger.Logger) *Photo {
	return &Photo{
		photoService: photoService,
		logger:       logger,
	}
}

type photoResponse struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	IsMain      bool      `json:"isMain"`
	IsAccepted  bool      `json:"isAccepted"`
	AddedAt     time.Time `json:"addedAt"`
}

func toPhotoResponse(photo model.Photo) photoResponse {
	return photoResponse{
		ID:          photo.ID,
		URL:         photo.URL,
		Description: photo.Description,
		IsMain:      photo.IsMain,
		IsAccepted:  photo.IsAccepted,
		AddedAt:     photo.AddedAt,
	}
}

// maxUploadSize caps a photo upload body.
const maxUploadSize = 10 << 20

// Upload handles POST /api/users/:userId/photos with a multipart "file" part.
func (h *Photo) Upload(c *gin.Context) {
	identity, ownerID, ok := h.requestScope(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo exceeds upload size limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file in request"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	photo, err := h.photoService.UploadPhoto(c.Request.Context(), identity.UserID, ownerID, data, c.PostForm("description"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPhotoResponse(photo))
}

// Get handles GET /api/users/:userId/photos/:photoId.
func (h *Photo) Get(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("photoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	photo, err := h.photoService.GetPhoto(c.Request.Context(), photoID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPhotoResponse(photo))
}

// List handles GET /api/users/:userId/photos.
func (h *Photo) List(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	photos, err := h.photoService.GetPhotosForUser(c.Request.Context(), ownerID)
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]photoResponse, 0, len(photos))
	for _, photo := range photos {
		out = append(out, toPhotoResponse(photo))
	}

	c.JSON(http.StatusOK, out)
}

// SetMain handles POST /api/users/:userId/photos/:photoId/set-main.
func (h *Photo) SetMain(c *gin.Context) {
	identity, ownerID, ok := h.requestScope(c)
	if !ok {
		return
	}

	photoID, err := strconv.ParseInt(c.Param("photoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	if err := h.photoService.SetMainPhoto(c.Request.Context(), identity.UserID, ownerID, photoID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/users/:userId/photos/:photoId.
func (h *Photo) Delete(c *gin.Context) {
	identity, ownerID, ok := h.requestScope(c)
	if !ok {
		return
	}

	photoID, err := strconv.ParseInt(c.Param("photoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), identity.UserID, ownerID, photoID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// requestScope extracts the authenticated identity and the owner id from the
// route. The identity is passed through to the service explicitly; ownership
// checks live there, not here.
func (h *Photo) requestScope(c *gin.Context) (model.Identity, int64, bool) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return model.Identity{}, 0, false
	}

	ownerID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return model.Identity{}, 0, false
	}

	return identity, ownerID, true
}
