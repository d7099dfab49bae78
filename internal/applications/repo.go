package applications

import "context"

// Repo defines persistence operations for applications.
type Repo interface {
	Create(ctx context.Context, app Application) error
	ListByApplicant(ctx context.Context, email string) ([]Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	UpdateStatus(ctx context.Context, id, status string) (UpdateResult, error)
}
