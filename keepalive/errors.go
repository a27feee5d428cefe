package keepalive

import "errors"

// Programming errors. The Controller panics with these wrapped; they
// indicate a host that broke the render/commit protocol.
var (
	// ErrPendingFillOutstanding indicates a render pass started while the
	// previous pass's cache fill was never committed.
	ErrPendingFillOutstanding = errors.New("keepalive: render pass started with a cache fill still pending")

	// ErrCorruptPendingFill indicates a staged fill without a key or node.
	ErrCorruptPendingFill = errors.New("keepalive: pending cache fill is corrupt")
)
