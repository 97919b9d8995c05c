package soiltest

import "context"

// Repo defines persistence operations for soil test records.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	LatestByUser(ctx context.Context, userID string) (Record, error)
}
