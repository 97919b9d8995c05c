package disease

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"krishi-backend/internal/shared/storage/object"
	"krishi-backend/internal/shared/storage/staging"
	"krishi-backend/internal/shared/telemetry"
)

// ErrUnsupportedImage rejects uploads whose extension is not a supported
// photo format.
var ErrUnsupportedImage = errors.New("only JPG, JPEG, PNG images are allowed")

var allowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Service runs disease detection for one crop photo: stage, classify, retain
// the photo in the object store, persist the verdict. Unlike soil test
// documents, crop photos are kept so the detection history can show them.
type Service struct {
	Staging    *staging.Store
	Objects    object.Store
	Classifier Classifier
	Repo       Repo

	now func() time.Time
}

func NewService(stagingStore *staging.Store, objects object.Store, classifier Classifier, repo Repo) *Service {
	return &Service{
		Staging:    stagingStore,
		Objects:    objects,
		Classifier: classifier,
		Repo:       repo,
		now:        time.Now,
	}
}

// Detect classifies one uploaded photo and returns the stored detection
// together with the classifier's full diagnosis.
func (s *Service) Detect(ctx context.Context, fileName string, r io.Reader) (Detection, Diagnosis, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedImageExts[ext]; !ok {
		return Detection{}, Diagnosis{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, ext)
	}

	stagedPath, _, err := s.Staging.Save(ctx, fileName, r)
	if err != nil {
		return Detection{}, Diagnosis{}, fmt.Errorf("stage upload: %w", err)
	}
	defer func() {
		if rmErr := s.Staging.Remove(stagedPath); rmErr != nil {
			telemetry.Warn("disease.staging.cleanup_failed", map[string]any{
				"path": stagedPath,
				"err":  rmErr.Error(),
			})
		}
	}()

	diag, err := s.Classifier.Classify(ctx, stagedPath)
	if err != nil {
		return Detection{}, Diagnosis{}, err
	}

	storageKey, err := s.retain(ctx, fileName, stagedPath)
	if err != nil {
		return Detection{}, Diagnosis{}, err
	}

	det := Detection{
		ID:                 uuid.NewString(),
		StorageKey:         storageKey,
		DiseaseName:        diag.Disease,
		Confidence:         diag.Confidence,
		Description:        diag.Description,
		Treatment:          diag.Treatment,
		PreventiveMeasures: diag.PreventiveMeasures,
		CreatedAt:          s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, det); err != nil {
		return Detection{}, Diagnosis{}, fmt.Errorf("persist detection: %w", err)
	}

	telemetry.Info("disease.detected", map[string]any{
		"detection_id": det.ID,
		"disease":      det.DiseaseName,
		"confidence":   det.Confidence,
		"storage_key":  storageKey,
	})
	return det, diag, nil
}

// retain copies the staged photo into the object store for the history view.
func (s *Service) retain(ctx context.Context, fileName, stagedPath string) (string, error) {
	f, err := os.Open(stagedPath)
	if err != nil {
		return "", fmt.Errorf("reopen staged photo: %w", err)
	}
	defer f.Close()

	key, _, _, err := s.Objects.Save(ctx, fileName, f)
	if err != nil {
		return "", fmt.Errorf("retain crop photo: %w", err)
	}
	return key, nil
}

// History returns the most recent detections, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]Detection, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.Recent(ctx, limit)
}
