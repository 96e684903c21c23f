package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/join-board-api/internal/constants"
	apierrors "github.com/yukikurage/join-board-api/internal/errors"
	"github.com/yukikurage/join-board-api/internal/models"
	"github.com/yukikurage/join-board-api/internal/services"
)

// Authenticator resolves a token key to its user
type Authenticator interface {
	Authenticate(ctx context.Context, key string) (*models.User, error)
}

// RequireAuth checks the Authorization header for a "Token <key>" or "Bearer <key>" credential
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := tokenFromHeader(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, apierrors.MsgNotAuthenticated)
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, services.ErrInvalidToken) {
				apierrors.Unauthorized(c, apierrors.MsgInvalidToken)
			} else {
				apierrors.InternalError(c, err)
			}
			c.Abort()
			return
		}

		// Store user in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyAuthToken, key)
		c.Next()
	}
}

func tokenFromHeader(header string) (string, bool) {
	scheme, key, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, constants.AuthSchemeToken) && !strings.EqualFold(scheme, constants.AuthSchemeBearer) {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", false
	}
	return key, true
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUser retrieves the current user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
