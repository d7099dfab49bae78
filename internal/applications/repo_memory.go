package applications

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Application
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Application)}
}

// Create stores an application.
func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[app.ID] = app
	return nil
}

// ListByApplicant returns applications submitted by the given email, newest first.
func (r *MemoryRepo) ListByApplicant(ctx context.Context, email string) ([]Application, error) {
	return r.listWhere(ctx, func(app Application) bool { return app.ApplicantEmail == email })
}

// ListByJob returns applications referencing the given job, newest first.
func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	return r.listWhere(ctx, func(app Application) bool { return app.JobID == jobID })
}

// UpdateStatus sets the status of one application.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id, status string) (UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return UpdateResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.data[id]
	if !ok {
		return UpdateResult{}, nil
	}
	modified := int64(0)
	if app.Status != status {
		app.Status = status
		r.data[id] = app
		modified = 1
	}
	return UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
}

func (r *MemoryRepo) listWhere(ctx context.Context, match func(Application) bool) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Application
	for _, app := range r.data {
		if match(app) {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
