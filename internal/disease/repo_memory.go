package disease

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo for dev runs without a database and for
// handler tests.
type MemoryRepo struct {
	mu         sync.RWMutex
	detections []Detection
}

// NewMemoryRepo constructs an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create appends a detection.
func (r *MemoryRepo) Create(ctx context.Context, d Detection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detections = append(r.detections, d)
	return nil
}

// Recent returns the newest detections first.
func (r *MemoryRepo) Recent(ctx context.Context, limit int) ([]Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Detection, len(r.detections))
	copy(out, r.detections)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
