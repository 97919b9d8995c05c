package soiltest

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo for dev runs without a database and for
// handler tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryRepo constructs an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create appends a record.
func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// LatestByUser returns the newest record for a user by test date, breaking
// ties on insertion time.
func (r *MemoryRepo) LatestByUser(ctx context.Context, userID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *Record
	for i := range r.records {
		rec := &r.records[i]
		if rec.UserID != userID {
			continue
		}
		if best == nil ||
			rec.TestedAt.After(best.TestedAt) ||
			(rec.TestedAt.Equal(best.TestedAt) && rec.CreatedAt.After(best.CreatedAt)) {
			best = rec
		}
	}
	if best == nil {
		return Record{}, ErrNotFound
	}
	return *best, nil
}

var _ Repo = (*MemoryRepo)(nil)
