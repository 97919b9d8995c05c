package disease

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"krishi-backend/internal/shared/storage/object/local"
	"krishi-backend/internal/shared/storage/staging"
)

type stubClassifier struct {
	diag Diagnosis
	err  error

	seenPath string
}

func (s *stubClassifier) Classify(ctx context.Context, imagePath string) (Diagnosis, error) {
	s.seenPath = imagePath
	return s.diag, s.err
}

func newTestDiseaseService(t *testing.T, clf Classifier, repo Repo) (*Service, string, string) {
	t.Helper()
	stagingDir := t.TempDir()
	objectDir := t.TempDir()
	svc := NewService(staging.New(stagingDir), local.New(objectDir), clf, repo)
	return svc, stagingDir, objectDir
}

func dirFileCount(t *testing.T, dir string) int {
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
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("walk %s: %v", dir, err)
	}
	return count
}

func scabDiagnosis() Diagnosis {
	return Diagnosis{
		Disease:            "Apple Scab",
		Confidence:         87,
		Description:        "Fungal disease.",
		Treatment:          "Apply fungicide.",
		PreventiveMeasures: []string{"Prune for airflow"},
	}
}

func TestDetectRetainsPhotoAndPersists(t *testing.T) {
	clf := &stubClassifier{diag: scabDiagnosis()}
	repo := NewMemoryRepo()
	svc, stagingDir, objectDir := newTestDiseaseService(t, clf, repo)

	det, diag, err := svc.Detect(context.Background(), "leaf.jpg", strings.NewReader("jpeg bytes"))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if det.ID == "" || det.StorageKey == "" {
		t.Fatalf("incomplete detection: %+v", det)
	}
	if det.DiseaseName != "Apple Scab" || diag.Disease != "Apple Scab" {
		t.Errorf("disease = %q / %q, want Apple Scab", det.DiseaseName, diag.Disease)
	}
	if !strings.HasSuffix(clf.seenPath, ".jpg") {
		t.Errorf("classifier saw %q, want a staged .jpg path", clf.seenPath)
	}

	// The staged copy is gone; the retained copy lives in the object store.
	if got := dirFileCount(t, stagingDir); got != 0 {
		t.Errorf("staging dir has %d files after success, want 0", got)
	}
	if got := dirFileCount(t, objectDir); got != 1 {
		t.Errorf("object store has %d files, want 1", got)
	}

	stored, err := repo.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != det.ID {
		t.Fatalf("stored detections = %+v", stored)
	}
}

func TestDetectRejectsNonImageUploads(t *testing.T) {
	clf := &stubClassifier{diag: scabDiagnosis()}
	svc, stagingDir, _ := newTestDiseaseService(t, clf, NewMemoryRepo())

	for _, name := range []string{"report.pdf", "notes.txt", "photo"} {
		_, _, err := svc.Detect(context.Background(), name, strings.NewReader("data"))
		if !errors.Is(err, ErrUnsupportedImage) {
			t.Errorf("Detect(%q): err = %v, want ErrUnsupportedImage", name, err)
		}
	}
	if clf.seenPath != "" {
		t.Error("classifier ran for a rejected upload")
	}
	if got := dirFileCount(t, stagingDir); got != 0 {
		t.Errorf("staging dir has %d files, want 0", got)
	}
}

func TestDetectCleansUpOnClassifierFailure(t *testing.T) {
	clf := &stubClassifier{err: fmt.Errorf("model down")}
	svc, stagingDir, objectDir := newTestDiseaseService(t, clf, NewMemoryRepo())

	_, _, err := svc.Detect(context.Background(), "leaf.png", strings.NewReader("png bytes"))
	if err == nil {
		t.Fatal("expected classifier error")
	}
	if got := dirFileCount(t, stagingDir); got != 0 {
		t.Errorf("staging dir has %d files after failure, want 0", got)
	}
	if got := dirFileCount(t, objectDir); got != 0 {
		t.Errorf("object store has %d files after failure, want 0", got)
	}
}

func TestHistoryClampsLimit(t *testing.T) {
	repo := NewMemoryRepo()
	svc, _, _ := newTestDiseaseService(t, &stubClassifier{diag: scabDiagnosis()}, repo)

	for i := 0; i < 25; i++ {
		if err := repo.Create(context.Background(), Detection{ID: fmt.Sprintf("det-%d", i)}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := svc.History(context.Background(), 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 20 {
		t.Errorf("default limit returned %d, want 20", len(got))
	}
	if got[0].ID != "det-24" {
		t.Errorf("first item = %q, want det-24 (newest first)", got[0].ID)
	}
}
