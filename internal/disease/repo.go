package disease

import (
	"context"
	"errors"
)

// ErrNotFound reports an empty detection history.
var ErrNotFound = errors.New("no disease detections found")

// Repo persists disease detections.
type Repo interface {
	Create(ctx context.Context, d Detection) error
	Recent(ctx context.Context, limit int) ([]Detection, error)
}
