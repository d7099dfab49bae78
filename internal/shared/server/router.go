package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal-backend/internal/applications"
	portalauth "jobportal-backend/internal/auth"
	"jobportal-backend/internal/jobs"
	"jobportal-backend/internal/shared/auth"
	"jobportal-backend/internal/shared/config"
	"jobportal-backend/internal/shared/metrics"
	"jobportal-backend/internal/shared/server/middleware"
	"jobportal-backend/internal/shared/server/respond"
)

// RouterDeps groups everything the router needs.
type RouterDeps struct {
	Config              config.Config
	Tokens              *auth.TokenService
	SessionHandler      *portalauth.SessionHandler
	GoogleAuth          *portalauth.GoogleService
	JobsHandler         *jobs.Handler
	ApplicationsHandler *applications.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"WRITE": {Rate: 5, Burst: 20},
			},
			GroupFor: func(c *gin.Context) string {
				switch c.Request.Method {
				case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
					return "WRITE"
				}
				return ""
			},
		}),
	)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Job is falling from the sky")
	})
	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	public := r.Group("/")
	deps.SessionHandler.RegisterRoutes(public)
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(public)
	}
	deps.JobsHandler.RegisterRoutes(public)
	deps.ApplicationsHandler.RegisterRoutes(public)

	protected := r.Group("/", middleware.Auth(deps.Tokens))
	deps.JobsHandler.RegisterProtectedRoutes(protected)
	deps.ApplicationsHandler.RegisterProtectedRoutes(protected)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
