package applications

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobportal-backend/internal/shared/server/middleware"
	"jobportal-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches public application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/job-applications/jobs/:job_id", h.listForJob)
	rg.POST("/job-applications", h.submit)
	rg.PATCH("/job-applications/:id", h.updateStatus)
}

// RegisterProtectedRoutes attaches routes that require a session.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/job-application", h.listForApplicant)
}

// listForApplicant is identity-scoped: the requested email must match the
// session claim, regardless of whether matching data exists.
func (h *Handler) listForApplicant(c *gin.Context) {
	claimEmail := middleware.UserEmailFromContext(c)
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		email = claimEmail
	}
	if email != claimEmail {
		respond.Error(c, http.StatusForbidden, "forbidden", "email does not match session identity", nil)
		return
	}

	enriched, err := h.Svc.ListForApplicant(c.Request.Context(), email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}

	resp := make([]map[string]any, 0, len(enriched))
	for _, app := range enriched {
		resp = append(resp, ToEnrichedResponse(app))
	}
	respond.OK(c, resp)
}

func (h *Handler) listForJob(c *gin.Context) {
	jobID := c.Param("job_id")
	c.Set("jobId", jobID)

	apps, err := h.Svc.ListForJob(c.Request.Context(), jobID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}

	resp := make([]map[string]any, 0, len(apps))
	for _, app := range apps {
		resp = append(resp, ToResponse(app))
	}
	respond.OK(c, resp)
}

func (h *Handler) submit(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	app, err := h.Svc.Submit(c.Request.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrJobNotFound):
			respond.Error(c, http.StatusUnprocessableEntity, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit application", nil)
		}
		return
	}

	c.Set("applicationId", app.ID)
	respond.JSON(c, http.StatusCreated, ToResponse(app))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.UpdateStatus(c.Request.Context(), id, strings.TrimSpace(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update application", nil)
		}
		return
	}

	respond.OK(c, result)
}
