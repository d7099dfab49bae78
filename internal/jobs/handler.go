package jobs

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"jobportal-backend/internal/shared/server/respond"
)

const maxLogoSize = 2 << 20 // 2MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches public job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
	rg.GET("/jobs/:id", h.get)
	rg.POST("/jobs", h.create)
	rg.GET("/logos/*key", h.serveLogo)
}

// RegisterProtectedRoutes attaches routes that require a session.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:id/logo", h.uploadLogo)
}

func (h *Handler) list(c *gin.Context) {
	filter := ListFilter{
		HREmail:          c.Query("email"),
		LocationSearch:   c.Query("search"),
		SortBySalaryDesc: c.Query("sort") == "true",
	}

	if raw := c.Query("min"); raw != "" {
		min, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "min must be an integer", nil)
			return
		}
		filter.MinSalary = &min
	}
	if raw := c.Query("max"); raw != "" {
		max, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "max must be an integer", nil)
			return
		}
		filter.MaxSalary = &max
	}

	found, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}

	resp := make([]map[string]any, 0, len(found))
	for _, job := range found {
		resp = append(resp, ToResponse(job))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("jobId", id)

	job, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job", nil)
		}
		return
	}

	respond.OK(c, ToResponse(job))
}

func (h *Handler) create(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.Create(c.Request.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create job", nil)
		}
		return
	}

	c.Set("jobId", job.ID)
	respond.JSON(c, http.StatusCreated, ToResponse(job))
}

func (h *Handler) uploadLogo(c *gin.Context) {
	id := c.Param("id")
	c.Set("jobId", id)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxLogoSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	job, err := h.Svc.UploadLogo(c.Request.Context(), id, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload logo", nil)
		}
		return
	}

	respond.OK(c, ToResponse(job))
}

func (h *Handler) serveLogo(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	reader, err := h.Svc.OpenLogo(c.Request.Context(), key)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "logo not found", nil)
		return
	}
	defer reader.Close()

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
