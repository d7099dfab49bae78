package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateStoresExtraAsJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	job := Job{
		ID:        "job-1",
		HREmail:   "hr@acme.example",
		Title:     "Backend Engineer",
		Company:   "Acme",
		Location:  "Austin, TX",
		SalaryMin: 90000,
		SalaryMax: 140000,
		Extra:     map[string]any{"remote": true},
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO jobs").
		WithArgs(
			job.ID,
			job.HREmail,
			job.Title,
			job.Company,
			job.CompanyLogo,
			job.Location,
			job.SalaryMin,
			job.SalaryMax,
			job.ApplicationCount,
			[]byte(`{"remote":true}`),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), job); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoIncrementIssuesSingleAtomicUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec(`UPDATE jobs SET application_count = application_count \+ 1`).
		WithArgs("job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.IncrementApplicationCount(context.Background(), "job-1"); err != nil {
		t.Fatalf("IncrementApplicationCount: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoIncrementMissingJob(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec(`UPDATE jobs SET application_count = application_count \+ 1`).
		WithArgs("no-such-id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.IncrementApplicationCount(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM jobs WHERE id").
		WithArgs("no-such-id").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "hr_email", "title", "company", "company_logo", "location",
			"salary_min", "salary_max", "application_count", "extra", "created_at",
		}))

	if _, err := repo.GetByID(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListBuildsFilterClauses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	min := int64(80000)

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE hr_email = \$1 AND lower\(location\) LIKE \$2 AND salary_min >= \$3 ORDER BY salary_min DESC`).
		WithArgs("hr@acme.example", "%austin%", min).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "hr_email", "title", "company", "company_logo", "location",
			"salary_min", "salary_max", "application_count", "extra", "created_at",
		}).AddRow(
			"job-1", "hr@acme.example", "Backend Engineer", "Acme", "", "Austin, TX",
			int64(90000), int64(140000), int64(0), []byte(`{}`), time.Now().UTC(),
		))

	found, err := repo.List(context.Background(), ListFilter{
		HREmail:          "hr@acme.example",
		LocationSearch:   "Austin",
		MinSalary:        &min,
		SortBySalaryDesc: true,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(found) != 1 || found[0].ID != "job-1" {
		t.Fatalf("unexpected result: %v", found)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
