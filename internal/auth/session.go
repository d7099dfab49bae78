package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobportal-backend/internal/shared/auth"
	"jobportal-backend/internal/shared/metrics"
	"jobportal-backend/internal/shared/server/respond"
)

// SessionHandler issues and clears session cookies.
type SessionHandler struct {
	Tokens       *auth.TokenService
	SecureCookie bool
}

// NewSessionHandler constructs a SessionHandler. Cookies are marked Secure
// outside dev-like environments.
func NewSessionHandler(tokens *auth.TokenService, env string) *SessionHandler {
	return &SessionHandler{
		Tokens:       tokens,
		SecureCookie: env == "production" || env == "staging",
	}
}

// RegisterRoutes attaches session routes to the router group.
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jwt", h.issue)
	rg.POST("/logout", h.clear)
}

type issueRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *SessionHandler) issue(c *gin.Context) {
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}

	token, err := h.Tokens.Sign(auth.Identity{Email: req.Email, Name: req.Name})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	metrics.IncTokensIssued()
	auth.SetSessionCookie(c, token, h.SecureCookie)
	respond.OK(c, gin.H{"success": true})
}

func (h *SessionHandler) clear(c *gin.Context) {
	auth.ClearSessionCookie(c, h.SecureCookie)
	respond.OK(c, gin.H{"success": true})
}
