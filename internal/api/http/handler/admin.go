package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"matchpoint/internal/logger"
	"matchpoint/internal/model"
	"matchpoint/internal/service"
)

// AdminService defines role administration operations.
type AdminService interface {
	EditRoles(ctx context.Context, userName string, roleNames []string) ([]string, error)
	GetUsersWithRoles(ctx context.Context) ([]model.UserWithRoles, error)
}

// ModerationService defines photo moderation operations.
type ModerationService interface {
	ListPendingPhotos(ctx context.Context, limit, offset int) ([]model.PhotoForModeration, error)
	ApprovePhoto(ctx context.Context, photoID int64) error
	RejectPhoto(ctx context.Context, photoID int64) error
}

// Admin handles HTTP endpoints for role administration and photo moderation.
type Admin struct {
	adminService      AdminService
	moderationService ModerationService
	logger            *logger.Logger
}

// NewAdmin creates a new Admin handler.
func NewAdmin(adminService AdminService, moderationService ModerationService, logger *logger.Logger) *Admin {
	return &Admin{
		adminService:      adminService,
		moderationService: moderationService,
		logger:            logger,
	}
}

type userWithRolesResponse struct {
	ID       int64    `json:"id"`
	UserName string   `json:"userName"`
	Roles    []string `json:"roles"`
}

type editRolesRequest struct {
	RoleNames []string `json:"roleNames"`
}

type photoForModerationResponse struct {
	ID         int64  `json:"id"`
	OwnerName  string `json:"ownerName"`
	URL        string `json:"url"`
	IsAccepted bool   `json:"isAccepted"`
}

// UsersWithRoles handles GET /api/admin/users-with-roles.
func (h *Admin) UsersWithRoles(c *gin.Context) {
	users, err := h.adminService.GetUsersWithRoles(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]userWithRolesResponse, 0, len(users))
	for _, user := range users {
		out = append(out, userWithRolesResponse{ID: user.ID, UserName: user.UserName, Roles: user.Roles})
	}

	c.JSON(http.StatusOK, out)
}

// EditRoles handles POST /api/admin/edit-roles/:userName.
//
// A removal failure after successful additions still reports the true
// resulting role set alongside the error payload.
func (h *Admin) EditRoles(c *gin.Context) {
	var req editRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	roles, err := h.adminService.EditRoles(c.Request.Context(), c.Param("userName"), req.RoleNames)
	if err != nil {
		if errors.Is(err, model.ErrRoleUpdateFailed) && roles != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "roles": roles})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// PhotosForModeration handles GET /api/admin/photos-for-moderation.
func (h *Admin) PhotosForModeration(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultModerationPageSize)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	photos, err := h.moderationService.ListPendingPhotos(c.Request.Context(), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]photoForModerationResponse, 0, len(photos))
	for _, photo := range photos {
		out = append(out, photoForModerationResponse{
			ID:         photo.ID,
			OwnerName:  photo.OwnerName,
			URL:        photo.URL,
			IsAccepted: photo.IsAccepted,
		})
	}

	c.JSON(http.StatusOK, out)
}

// ApprovePhoto handles POST /api/admin/photos/:photoId/approve.
func (h *Admin) ApprovePhoto(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("photoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	if err := h.moderationService.ApprovePhoto(c.Request.Context(), photoID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RejectPhoto handles POST /api/admin/photos/:photoId/reject.
func (h *Admin) RejectPhoto(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("photoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	if err := h.moderationService.RejectPhoto(c.Request.Context(), photoID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
