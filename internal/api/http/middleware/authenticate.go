package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"matchpoint/internal/logger"
	"matchpoint/internal/model"
)

const identityKey = "identity"

// Authenticate validates bearer tokens and injects the caller's identity
// into the request context.
type Authenticate struct {
	tokenManager model.TokenManager
	logger       *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenManager model.TokenManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenManager: tokenManager, logger: logger}
}

const bearerPrefix = "Bearer "

// Handle parses the Authorization header, validates the token and stores the
// identity for downstream handlers. Requests without a valid Bearer token
// are rejected with 401.
func (m *Authenticate) Handle(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	tokenString := strings.TrimPrefix(header, bearerPrefix)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	identity, err := m.tokenManager.Parse(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization token"})
		return
	}

	c.Set(identityKey, identity)
	c.Next()
}

// IdentityFromContext returns the authenticated identity set by Authenticate.
func IdentityFromContext(c *gin.Context) (model.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return model.Identity{}, false
	}
	identity, ok := value.(model.Identity)
	return identity, ok
}

// SetIdentity stores an identity in the context. Exposed for handler tests.
func SetIdentity(c *gin.Context, identity model.Identity) {
	c.Set(identityKey, identity)
}
