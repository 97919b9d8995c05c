package object

import (
	"context"
	"io"
)

// Store is the contract for saving and retrieving retained binary objects,
// such as crop photos kept for the detection history.
type Store interface {
	Save(ctx context.Context, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
