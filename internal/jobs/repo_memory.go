package jobs

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Job
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Job)}
}

// Create stores a job posting.
func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[job.ID] = job
	return nil
}

// GetByID fetches a single job.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.data[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// GetByIDs fetches jobs for the given ids, keyed by id.
func (r *MemoryRepo) GetByIDs(ctx context.Context, ids []string) (map[string]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Job, len(ids))
	for _, id := range ids {
		if job, ok := r.data[id]; ok {
			out[id] = job
		}
	}
	return out, nil
}

// List returns jobs matching the filter.
func (r *MemoryRepo) List(ctx context.Context, filter ListFilter) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Job
	search := strings.ToLower(filter.LocationSearch)
	for _, job := range r.data {
		if filter.HREmail != "" && job.HREmail != filter.HREmail {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(job.Location), search) {
			continue
		}
		if filter.MinSalary != nil && job.SalaryMin < *filter.MinSalary {
			continue
		}
		if filter.MaxSalary != nil && job.SalaryMax > *filter.MaxSalary {
			continue
		}
		out = append(out, job)
	}

	if filter.SortBySalaryDesc {
		sort.Slice(out, func(i, j int) bool { return out[i].SalaryMin > out[j].SalaryMin })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out, nil
}

// IncrementApplicationCount bumps the counter under the write lock.
func (r *MemoryRepo) IncrementApplicationCount(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	job.ApplicationCount++
	r.data[id] = job
	return nil
}

// SetCompanyLogo stores the logo URL for a job.
func (r *MemoryRepo) SetCompanyLogo(ctx context.Context, id, logoURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	job.CompanyLogo = logoURL
	r.data[id] = job
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
