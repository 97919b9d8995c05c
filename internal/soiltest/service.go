package soiltest

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"krishi-backend/internal/shared/metrics"
	"krishi-backend/internal/shared/storage/staging"
	"krishi-backend/internal/shared/telemetry"
)

// TextExtractor produces plain text from a staged document.
type TextExtractor interface {
	Text(ctx context.Context, path string) (string, error)
}

var allowedExts = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Service runs the ingestion pipeline for one upload: validate, stage,
// extract, parse, persist, clean up. The staged file is removed on every
// exit path; the staging area is unbounded otherwise.
type Service struct {
	Staging   *staging.Store
	Extractor TextExtractor
	Repo      Repo

	now func() time.Time
}

// NewService wires the pipeline. now defaults to time.Now.
func NewService(stagingStore *staging.Store, extractor TextExtractor, repo Repo) *Service {
	return &Service{
		Staging:   stagingStore,
		Extractor: extractor,
		Repo:      repo,
		now:       time.Now,
	}
}

// Ingest processes one uploaded soil test document and returns the persisted
// record. Validation failures surface as ErrUnsupportedType before anything
// is written to disk.
func (s *Service) Ingest(ctx context.Context, userID, fileName string, r io.Reader) (Record, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExts[ext]; !ok {
		metrics.IncIngestRejected()
		return Record{}, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	metrics.IncIngestStarted()
	start := s.now()

	rec, err := s.runPipeline(ctx, userID, fileName, r)
	if err != nil {
		metrics.IncIngestFailed()
		return Record{}, err
	}

	metrics.IncIngestCompleted()
	metrics.ObserveIngestDurationMs(float64(s.now().Sub(start).Microseconds()) / 1000.0)
	return rec, nil
}

func (s *Service) runPipeline(ctx context.Context, userID, fileName string, r io.Reader) (Record, error) {
	stagedPath, size, err := s.Staging.Save(ctx, fileName, r)
	if err != nil {
		return Record{}, fmt.Errorf("stage upload: %w", err)
	}
	defer func() {
		if rmErr := s.Staging.Remove(stagedPath); rmErr != nil {
			telemetry.Warn("soiltest.staging.cleanup_failed", map[string]any{
				"path": stagedPath,
				"err":  rmErr.Error(),
			})
		}
	}()

	text, err := s.Extractor.Text(ctx, stagedPath)
	if err != nil {
		return Record{}, err
	}

	reading := ParseReport(text, s.now())

	rec := Record{
		ID:               uuid.NewString(),
		UserID:           userID,
		Ph:               reading.Ph,
		Moisture:         reading.Moisture,
		Nitrogen:         reading.Nitrogen,
		Phosphorus:       reading.Phosphorus,
		Potassium:        reading.Potassium,
		OrganicMatter:    reading.OrganicMatter,
		OriginalFilename: fileName,
		TestedAt:         reading.TestedAt,
		CreatedAt:        s.now().UTC(),
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("persist soil test: %w", err)
	}

	telemetry.Info("soiltest.ingested", map[string]any{
		"soil_test_id": rec.ID,
		"user_id":      userID,
		"file_name":    fileName,
		"size_bytes":   size,
		"tested_at":    rec.TestedAt.Format("2006-01-02"),
	})
	return rec, nil
}

// Latest returns the most recent record for a user.
func (s *Service) Latest(ctx context.Context, userID string) (Record, error) {
	if strings.TrimSpace(userID) == "" {
		return Record{}, ErrNotFound
	}
	return s.Repo.LatestByUser(ctx, userID)
}
