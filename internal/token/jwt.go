package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"matchpoint/internal/model"
)

// Claims represents JWT claims carrying the user ID and role set.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64    `json:"user_id"`
	Roles  []string `json:"roles"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) model.TokenManager {
	return &JWT{secretKey: secretKey}
}

const accessTTL = 24 * time.Hour

// Generate creates an access token for the user with its role claims.
func (j *JWT) Generate(userID int64, roles []string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
		},
		UserID: userID,
		Roles:  roles,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Parse validates the token and extracts the caller's identity.
func (j *JWT) Parse(tokenString string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return model.Identity{}, fmt.Errorf("access token is invalid")
	}
	if claims.UserID == 0 {
		return model.Identity{}, fmt.Errorf("access token carries no user id")
	}

	return model.Identity{UserID: claims.UserID, Roles: claims.Roles}, nil
}
