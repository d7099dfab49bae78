package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal-backend/internal/shared/auth"
	"jobportal-backend/internal/shared/metrics"
	"jobportal-backend/internal/shared/server/respond"
)

const (
	userEmailKey   = "userEmail"
	userNameKey    = "userName"
	userPictureKey = "userPicture"
)

// Auth validates the session cookie and stores the identity in context.
// Requests without a valid token are rejected with 401. CORS preflights
// never reach this middleware; the global CORS handler aborts them first.
func Auth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c)
		if token == "" {
			metrics.IncAuthFailures()
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing token", nil)
			return
		}

		identity, err := tokens.Verify(token)
		if err != nil {
			metrics.IncAuthFailures()
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userEmailKey, identity.Email)
		if identity.Name != "" {
			c.Set(userNameKey, identity.Name)
		}
		if identity.Picture != "" {
			c.Set(userPictureKey, identity.Picture)
		}
		c.Next()
	}
}

// UserEmailFromContext fetches the email claim set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}
