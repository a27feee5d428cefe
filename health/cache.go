package health

import (
	"context"
	"fmt"
)

// Sizer is the read-only view of a cache a CacheChecker inspects.
type Sizer interface {
	// Len returns the number of cached entries.
	Len() int
	// Max returns the bound, or zero when unbounded.
	Max() int
	// Verify checks structural invariants.
	Verify() error
}

// CacheCheckerConfig configures the cache health checker.
type CacheCheckerConfig struct {
	// WarningRatio is the occupancy of a bounded cache that triggers degraded
	// status. Value should be in (0, 1]. Default: 1.0 (full)
	WarningRatio float64
}

// CacheChecker checks occupancy and consistency of a keep-alive cache.
type CacheChecker struct {
	name   string
	source Sizer
	config CacheCheckerConfig
}

// NewCacheChecker creates a cache health checker named name.
func NewCacheChecker(name string, source Sizer, config CacheCheckerConfig) *CacheChecker {
	if config.WarningRatio <= 0 || config.WarningRatio > 1 {
		config.WarningRatio = 1.0
	}
	if name == "" {
		name = "keepalive"
	}

	return &CacheChecker{name: name, source: source, config: config}
}

// Name returns the name of this checker.
func (c *CacheChecker) Name() string {
	return c.name
}

// Check performs the cache health check.
func (c *CacheChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	if c.source == nil {
		return Unhealthy("no cache to check", ErrNilSource)
	}

	size, max := c.source.Len(), c.source.Max()
	details := map[string]any{
		"entries": size,
		"max":     max,
	}

	if err := c.source.Verify(); err != nil {
		return Unhealthy(
			"cache invariant violated",
			fmt.Errorf("%w: %w", ErrCheckFailed, err),
		).WithDetails(details)
	}

	if max <= 0 {
		details["bounded"] = false
		return Healthy(fmt.Sprintf("cache holds %d entries (unbounded)", size)).WithDetails(details)
	}

	ratio := float64(size) / float64(max)
	details["bounded"] = true
	details["usage_percent"] = ratio * 100

	if ratio >= c.config.WarningRatio {
		return Degraded(
			fmt.Sprintf("cache occupancy high: %d/%d", size, max),
		).WithDetails(details)
	}

	return Healthy(
		fmt.Sprintf("cache occupancy normal: %d/%d", size, max),
	).WithDetails(details)
}

// Ensure CacheChecker implements Checker
var _ Checker = (*CacheChecker)(nil)
