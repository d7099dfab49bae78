package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const applicationColumns = `id, job_id, applicant_email, status, extra, created_at`

// Create inserts a new application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (id, job_id, applicant_email, status, extra, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	extra, err := marshalExtra(app.Extra)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		app.ID,
		app.JobID,
		app.ApplicantEmail,
		app.Status,
		extra,
		app.CreatedAt,
	)
	return err
}

// ListByApplicant returns applications submitted by the given email, newest first.
func (r *PGRepo) ListByApplicant(ctx context.Context, email string) ([]Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE applicant_email = $1 ORDER BY created_at DESC`
	return r.queryList(ctx, query, email)
}

// ListByJob returns applications referencing the given job, newest first.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`
	return r.queryList(ctx, query, jobID)
}

// UpdateStatus sets the status of one application. The prior status is
// compared in the same statement so a no-op update reports modified=0.
func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) (UpdateResult, error) {
	const query = `
UPDATE applications AS a
SET status = $1
FROM (SELECT id, status FROM applications WHERE id = $2) AS prev
WHERE a.id = prev.id
RETURNING prev.status IS DISTINCT FROM $1`

	var modified bool
	if err := r.DB.QueryRowContext(ctx, query, status, id).Scan(&modified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UpdateResult{}, nil
		}
		return UpdateResult{}, err
	}

	result := UpdateResult{MatchedCount: 1}
	if modified {
		result.ModifiedCount = 1
	}
	return result, nil
}

func (r *PGRepo) queryList(ctx context.Context, query string, arg any) ([]Application, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		var app Application
		var extra []byte
		if err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.ApplicantEmail,
			&app.Status,
			&extra,
			&app.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(extra) > 0 {
			if err := json.Unmarshal(extra, &app.Extra); err != nil {
				return nil, fmt.Errorf("decode application extra: %w", err)
			}
		}
		out = append(out, app)
	}
	return out, rows.Err()
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
