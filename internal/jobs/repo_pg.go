package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, hr_email, title, company, company_logo, location, salary_min, salary_max, application_count, extra, created_at`

// Create inserts a new job posting.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, hr_email, title, company, company_logo, location, salary_min, salary_max, application_count, extra, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	extra, err := marshalExtra(job.Extra)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.HREmail,
		job.Title,
		job.Company,
		job.CompanyLogo,
		job.Location,
		job.SalaryMin,
		job.SalaryMax,
		job.ApplicationCount,
		extra,
		job.CreatedAt,
	)
	return err
}

// GetByID fetches a single job.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	row := r.DB.QueryRowContext(ctx, query, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

// GetByIDs fetches jobs for the given ids in one query, keyed by id.
func (r *PGRepo) GetByIDs(ctx context.Context, ids []string) (map[string]Job, error) {
	out := make(map[string]Job, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out[job.ID] = job
	}
	return out, rows.Err()
}

// List returns jobs matching the filter.
func (r *PGRepo) List(ctx context.Context, filter ListFilter) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	var conds []string
	var args []any

	if filter.HREmail != "" {
		args = append(args, filter.HREmail)
		conds = append(conds, fmt.Sprintf("hr_email = $%d", len(args)))
	}
	if filter.LocationSearch != "" {
		args = append(args, "%"+strings.ToLower(filter.LocationSearch)+"%")
		conds = append(conds, fmt.Sprintf("lower(location) LIKE $%d", len(args)))
	}
	if filter.MinSalary != nil {
		args = append(args, *filter.MinSalary)
		conds = append(conds, fmt.Sprintf("salary_min >= $%d", len(args)))
	}
	if filter.MaxSalary != nil {
		args = append(args, *filter.MaxSalary)
		conds = append(conds, fmt.Sprintf("salary_max <= $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	if filter.SortBySalaryDesc {
		query += " ORDER BY salary_min DESC"
	} else {
		query += " ORDER BY created_at DESC"
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

// IncrementApplicationCount atomically bumps the denormalized counter.
// Using a single UPDATE keeps concurrent submissions from losing increments.
func (r *PGRepo) IncrementApplicationCount(ctx context.Context, id string) error {
	const query = `UPDATE jobs SET application_count = application_count + 1 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCompanyLogo stores the logo URL for a job.
func (r *PGRepo) SetCompanyLogo(ctx context.Context, id, logoURL string) error {
	const query = `UPDATE jobs SET company_logo = $1 WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, logoURL, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var extra []byte
	if err := row.Scan(
		&job.ID,
		&job.HREmail,
		&job.Title,
		&job.Company,
		&job.CompanyLogo,
		&job.Location,
		&job.SalaryMin,
		&job.SalaryMax,
		&job.ApplicationCount,
		&extra,
		&job.CreatedAt,
	); err != nil {
		return Job{}, err
	}
	if len(extra) > 0 {
		if err := json.Unmarshal(extra, &job.Extra); err != nil {
			return Job{}, fmt.Errorf("decode job extra: %w", err)
		}
	}
	return job, nil
}

func marshalExtra(extra map[string]any) ([]byte, error) {
	if len(extra) == 0 {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("encode extra: %w", err)
	}
	return data, nil
}

var _ Repo = (*PGRepo)(nil)
