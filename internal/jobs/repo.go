package jobs

import "context"

// Repo defines persistence operations for jobs.
type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, id string) (Job, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]Job, error)
	List(ctx context.Context, filter ListFilter) ([]Job, error)
	IncrementApplicationCount(ctx context.Context, id string) error
	SetCompanyLogo(ctx context.Context, id, logoURL string) error
}
