package jobs

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	localstore "jobportal-backend/internal/shared/storage/object/local"
)

func countStoredFiles(t *testing.T, dir string) int {
	t.Helper()
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk store dir: %v", err)
	}
	return count
}

func TestUploadLogoRejectionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Store: localstore.New(dir)}

	job := Job{ID: "job-1", HREmail: "hr@acme.example", Title: "Backend", Company: "Acme"}
	if err := repo.Create(context.Background(), job); err != nil {
		t.Fatalf("seed job: %v", err)
	}

	_, err := svc.UploadLogo(context.Background(), "job-1", "notes.txt", strings.NewReader("plain text, not an image"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if n := countStoredFiles(t, dir); n != 0 {
		t.Fatalf("expected no stored objects after rejection, got %d", n)
	}

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 600)...)
	updated, err := svc.UploadLogo(context.Background(), "job-1", "logo.png", bytes.NewReader(png))
	if err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}
	if !strings.HasPrefix(updated.CompanyLogo, "/logos/") {
		t.Fatalf("expected /logos/ path, got %q", updated.CompanyLogo)
	}
	if n := countStoredFiles(t, dir); n != 1 {
		t.Fatalf("expected 1 stored object, got %d", n)
	}

	// The full body survives the sniff-then-save split.
	key := strings.TrimPrefix(updated.CompanyLogo, "/logos/")
	reader, err := svc.OpenLogo(context.Background(), key)
	if err != nil {
		t.Fatalf("OpenLogo: %v", err)
	}
	defer reader.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		t.Fatalf("read logo: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), png) {
		t.Fatalf("stored logo does not match upload")
	}
}
