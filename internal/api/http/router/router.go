package router

import (
	"github.com/gin-gonic/gin"

	"matchpoint/internal/api/http/handler"
	"matchpoint/internal/api/http/middleware"
	"matchpoint/internal/logger"
	"matchpoint/internal/model"
)

// Router wires handlers and middleware into the HTTP route tree.
type Router struct {
	authService       handler.AuthService
	photoService      handler.PhotoService
	adminService      handler.AdminService
	moderationService handler.ModerationService
	tokenManager      model.TokenManager
	userStore         model.UserStore
	logger            *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	photoService handler.PhotoService,
	adminService handler.AdminService,
	moderationService handler.ModerationService,
	tokenManager model.TokenManager,
	userStore model.UserStore,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:       authService,
		photoService:      photoService,
		adminService:      adminService,
		moderationService: moderationService,
		tokenManager:      tokenManager,
		userStore:         userStore,
		logger:            logger,
	}
}

// Register builds the gin engine with all routes and middleware.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.logger)
	lastActive := middleware.NewLastActive(r.userStore, r.logger)

	engine := gin.New()
	engine.Use(gin.Recovery(), logging.Handle)

	authHandler := handler.NewAuth(r.authService, r.logger)
	photoHandler := handler.NewPhoto(r.photoService, r.logger)
	adminHandler := handler.NewAdmin(r.adminService, r.moderationService, r.logger)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	photos := api.Group("/users/:userId/photos")
	photos.Use(authenticate.Handle, lastActive.Handle)
	photos.POST("", photoHandler.Upload)
	photos.GET("", photoHandler.List)
	photos.GET("/:photoId", photoHandler.Get)
	photos.POST("/:photoId/set-main", photoHandler.SetMain)
	photos.DELETE("/:photoId", photoHandler.Delete)

	admin := api.Group("/admin")
	admin.Use(authenticate.Handle, lastActive.Handle)
	admin.GET("/users-with-roles", middleware.RequireRole(model.RoleAdmin), adminHandler.UsersWithRoles)
	admin.POST("/edit-roles/:userName", middleware.RequireRole(model.RoleAdmin), adminHandler.EditRoles)
	admin.GET("/photos-for-moderation", middleware.RequireRole(model.RoleAdmin, model.RoleModerator), adminHandler.PhotosForModeration)
	admin.POST("/photos/:photoId/approve", middleware.RequireRole(model.RoleAdmin, model.RoleModerator), adminHandler.ApprovePhoto)
	admin.POST("/photos/:photoId/reject", middleware.RequireRole(model.RoleAdmin, model.RoleModerator), adminHandler.RejectPhoto)

	return engine
}
