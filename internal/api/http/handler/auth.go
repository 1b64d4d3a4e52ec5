package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"matchpoint/internal/logger"
	"matchpoint/internal/model"
)

// AuthService defines registration and login operations.
type AuthService interface {
	Register(ctx context.Context, userName, knownAs, password string) (model.User, string, error)
	Login(ctx context.Context, userName, password string) (model.User, string, error)
}

// Auth handles HTTP endpoints for registration and login.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	UserName string `json:"userName" binding:"required"`
	KnownAs  string `json:"knownAs"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
	KnownAs  string `json:"knownAs"`
	Token    string `json:"token"`
}

// Register handles POST /api/auth/register.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, tokenString, err := h.authService.Register(c.Request.Context(), req.UserName, req.KnownAs, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		ID:       user.ID,
		UserName: user.UserName,
		KnownAs:  user.KnownAs,
		Token:    tokenString,
	})
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, tokenString, err := h.authService.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		ID:       user.ID,
		UserName: user.UserName,
		KnownAs:  user.KnownAs,
		Token:    tokenString,
	})
}
