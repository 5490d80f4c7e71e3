package middleware

import (
	"context"
	"log"
	"strings"

	"blogapi/apperrors"
	"blogapi/models"
	"blogapi/permissions"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const identityKey = "identity"

type UserLookup interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// Authenticate resolves an optional bearer token into an identity. Requests
// without a token go on anonymously; a token that does not check out stops the
// request with authentication_failed.
func Authenticate(secret string, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, err := utils.ValidateJWT(token, secret)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			_ = c.Error(apperrors.ErrAuthenticationFailed)
			c.Abort()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil || !user.IsActive {
			log.Printf("Token for unknown or inactive user %d", userID)
			_ = c.Error(apperrors.ErrAuthenticationFailed)
			c.Abort()
			return
		}

		c.Set(identityKey, &permissions.Identity{
			UserID:   user.ID,
			Username: user.Username,
			IsStaff:  user.IsStaff,
		})
		c.Next()
	}
}

// AuthRequired stops anonymous requests with not_authenticated. It must run
// after Authenticate.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).Authenticated() {
			_ = c.Error(apperrors.ErrNotAuthenticated)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the requester, or nil for anonymous requests.
func CurrentIdentity(c *gin.Context) *permissions.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(*permissions.Identity); ok {
			return id
		}
	}
	return nil
}

func bearerToken(c *gin.Context) string {
	if websocket.IsWebSocketUpgrade(c.Request) {
		if token := c.Query("token"); token != "" {
			return token
		}
	}
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
