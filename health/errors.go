package health

import "errors"

var (
	// ErrCheckFailed indicates a health check failed.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrNilSource indicates a cache checker was built without a source.
	ErrNilSource = errors.New("health: nil cache source")
)
