package applications

import (
	"context"
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
	app := Application{
		ID:             "app-1",
		JobID:          "job-1",
		ApplicantEmail: "a@example.com",
		Status:         StatusPending,
		Extra:          map[string]any{"cover_letter": "hello"},
		CreatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO applications").
		WithArgs(
			app.ID,
			app.JobID,
			app.ApplicantEmail,
			app.Status,
			[]byte(`{"cover_letter":"hello"}`),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByApplicantDecodesExtra(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery(`SELECT (.+) FROM applications WHERE applicant_email = \$1 ORDER BY created_at DESC`).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "job_id", "applicant_email", "status", "extra", "created_at",
		}).AddRow(
			"app-1", "job-1", "a@example.com", StatusPending,
			[]byte(`{"cover_letter":"hello"}`), time.Now().UTC(),
		))

	found, err := repo.ListByApplicant(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("ListByApplicant: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 application, got %d", len(found))
	}
	if found[0].Extra["cover_letter"] != "hello" {
		t.Fatalf("expected extra decoded, got %v", found[0].Extra)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusReportsCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery(`UPDATE applications AS a\s+SET status = \$1`).
		WithArgs("accepted", "app-1").
		WillReturnRows(sqlmock.NewRows([]string{"modified"}).AddRow(true))

	result, err := repo.UpdateStatus(context.Background(), "app-1", "accepted")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if result.MatchedCount != 1 || result.ModifiedCount != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	// Setting the status it already has matches but modifies nothing.
	mock.ExpectQuery(`UPDATE applications AS a\s+SET status = \$1`).
		WithArgs("accepted", "app-1").
		WillReturnRows(sqlmock.NewRows([]string{"modified"}).AddRow(false))

	result, err = repo.UpdateStatus(context.Background(), "app-1", "accepted")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if result.MatchedCount != 1 || result.ModifiedCount != 0 {
		t.Fatalf("expected matched=1 modified=0, got %+v", result)
	}

	mock.ExpectQuery(`UPDATE applications AS a\s+SET status = \$1`).
		WithArgs("accepted", "no-such-id").
		WillReturnRows(sqlmock.NewRows([]string{"modified"}))

	result, err = repo.UpdateStatus(context.Background(), "no-such-id", "accepted")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if result.MatchedCount != 0 {
		t.Fatalf("expected zero matches, got %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
