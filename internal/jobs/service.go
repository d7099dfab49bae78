package jobs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobportal-backend/internal/shared/metrics"
	"jobportal-backend/internal/shared/storage/object"
)

// Service contains business logic for job postings.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// Create validates and persists a new job posting.
func (s *Service) Create(ctx context.Context, payload map[string]any) (Job, error) {
	job, err := ParsePayload(payload)
	if err != nil {
		return Job{}, err
	}

	job.ID = uuid.NewString()
	job.ApplicationCount = 0
	job.CreatedAt = time.Now().UTC()

	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}

	metrics.IncJobsCreated()
	return job, nil
}

// Get returns a single job by id.
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns jobs matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Job, error) {
	return s.Repo.List(ctx, filter)
}

// UploadLogo stores a company logo and records its serving path on the job.
// The content type is sniffed up front so rejected uploads never hit the store.
func (s *Service) UploadLogo(ctx context.Context, id, fileName string, r io.Reader) (Job, error) {
	job, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Job{}, err
	}

	var sniff [512]byte
	n, readErr := io.ReadFull(r, sniff[:])
	if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		return Job{}, fmt.Errorf("read logo: %w", readErr)
	}
	mimeType := http.DetectContentType(sniff[:n])
	if !strings.HasPrefix(mimeType, "image/") {
		return Job{}, fmt.Errorf("%w: logo must be an image, got %s", ErrInvalidInput, mimeType)
	}

	body := io.MultiReader(bytes.NewReader(sniff[:n]), r)
	storageKey, _, _, err := s.Store.Save(ctx, job.ID, fileName, body)
	if err != nil {
		return Job{}, err
	}

	logoURL := "/logos/" + storageKey
	if err := s.Repo.SetCompanyLogo(ctx, job.ID, logoURL); err != nil {
		return Job{}, err
	}

	job.CompanyLogo = logoURL
	return job, nil
}

// OpenLogo streams a previously uploaded logo by its storage key.
func (s *Service) OpenLogo(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	return s.Store.Open(ctx, storageKey)
}
