package middleware

import (
	"github.com/gin-gonic/gin"

	"matchpoint/internal/logger"
	"matchpoint/internal/model"
)

// LastActive records the caller's activity after each authenticated request.
type LastActive struct {
	userStore model.UserStore
	logger    *logger.Logger
}

// NewLastActive creates a new LastActive middleware instance.
func NewLastActive(userStore model.UserStore, logger *logger.Logger) *LastActive {
	return &LastActive{userStore: userStore, logger: logger}
}

// Handle runs the request first, then touches the user's last-active
// timestamp. A touch failure never fails the request.
func (m *LastActive) Handle(c *gin.Context) {
	c.Next()

	identity, ok := IdentityFromContext(c)
	if !ok {
		return
	}

	if err := m.userStore.TouchLastActive(c.Request.Context(), identity.UserID); err != nil {
		m.logger.Warn("failed to record user activity",
			"user_id", identity.UserID,
			"error", err.Error())
	}
}
