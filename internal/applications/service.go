package applications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobportal-backend/internal/jobs"
	"jobportal-backend/internal/shared/metrics"
)

// Service contains the aggregation logic: application submission with
// denormalized counting, and read-time enrichment from the jobs collection.
type Service struct {
	Repo     Repo
	JobsRepo jobs.Repo
}

// Submit validates and persists a new application, then atomically bumps the
// referenced job's application count. A missing job rejects the submission.
func (s *Service) Submit(ctx context.Context, payload map[string]any) (Application, error) {
	app, err := ParsePayload(payload)
	if err != nil {
		return Application{}, err
	}

	if _, err := s.JobsRepo.GetByID(ctx, app.JobID); err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return Application{}, fmt.Errorf("%w: %s", ErrJobNotFound, app.JobID)
		}
		return Application{}, err
	}

	app.ID = uuid.NewString()
	app.CreatedAt = time.Now().UTC()

	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}

	if err := s.JobsRepo.IncrementApplicationCount(ctx, app.JobID); err != nil {
		return Application{}, fmt.Errorf("update application count: %w", err)
	}

	metrics.IncApplicationsSubmitted()
	return app, nil
}

// ListForApplicant returns the applicant's applications enriched with display
// fields from the referenced jobs. The jobs are batch-fetched in one query
// and joined in memory; applications whose job is gone stay unenriched.
func (s *Service) ListForApplicant(ctx context.Context, email string) ([]Enriched, error) {
	apps, err := s.Repo.ListByApplicant(ctx, email)
	if err != nil {
		return nil, err
	}

	jobIDs := make([]string, 0, len(apps))
	seen := make(map[string]struct{}, len(apps))
	for _, app := range apps {
		if _, ok := seen[app.JobID]; ok {
			continue
		}
		seen[app.JobID] = struct{}{}
		jobIDs = append(jobIDs, app.JobID)
	}

	referenced, err := s.JobsRepo.GetByIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}

	out := make([]Enriched, 0, len(apps))
	for _, app := range apps {
		enriched := Enriched{Application: app}
		if job, ok := referenced[app.JobID]; ok {
			enriched.Title = job.Title
			enriched.Company = job.Company
			enriched.CompanyLogo = job.CompanyLogo
			enriched.Location = job.Location
		}
		out = append(out, enriched)
	}
	return out, nil
}

// ListForJob returns applications referencing the given job.
func (s *Service) ListForJob(ctx context.Context, jobID string) ([]Application, error) {
	return s.Repo.ListByJob(ctx, jobID)
}

// UpdateStatus sets the status of one application and reports the counts.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (UpdateResult, error) {
	if status == "" {
		return UpdateResult{}, fmt.Errorf("%w: status is required", ErrInvalidInput)
	}
	result, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return UpdateResult{}, err
	}
	if result.MatchedCount == 0 {
		return UpdateResult{}, ErrNotFound
	}
	return result, nil
}
