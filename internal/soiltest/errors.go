package soiltest

import "errors"

var (
	// ErrUnsupportedType rejects uploads whose extension is not in the
	// allow-list. Raised before anything is written to staging.
	ErrUnsupportedType = errors.New("only PDF, JPG, JPEG, PNG files are allowed")
	// ErrNotFound reports that a user has no persisted soil tests.
	ErrNotFound = errors.New("no soil test data found")
)
