package health

import (
	"context"
	"time"
)

// Status is the health of a keep-alive cache.
type Status int

const (
	// StatusHealthy means the cache is consistent and has room.
	StatusHealthy Status = iota
	// StatusDegraded means the cache is consistent but at or near its bound.
	StatusDegraded
	// StatusUnhealthy means a structural invariant was violated or the
	// check could not run.
	StatusUnhealthy
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is the outcome of one check.
type Result struct {
	Status    Status
	Message   string
	Details   map[string]any // entries, max, usage_percent, ...
	Duration  time.Duration
	Timestamp time.Time
	Error     error // set when Status is StatusUnhealthy
}

// Healthy creates a healthy result.
func Healthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message, Timestamp: time.Now()}
}

// Degraded creates a degraded result.
func Degraded(message string) Result {
	return Result{Status: StatusDegraded, Message: message, Timestamp: time.Now()}
}

// Unhealthy creates an unhealthy result carrying err.
func Unhealthy(message string, err error) Result {
	return Result{Status: StatusUnhealthy, Message: message, Error: err, Timestamp: time.Now()}
}

// WithDetails returns r with details attached.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// Checker reports the health of one cache.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// CheckAll runs checkers in order and folds them into one result carrying
// the worst status. Each check's outcome is kept in Details under its name.
func CheckAll(ctx context.Context, checkers ...Checker) Result {
	start := time.Now()
	status := StatusHealthy
	details := make(map[string]any, len(checkers))

	for _, c := range checkers {
		began := time.Now()
		r := c.Check(ctx)
		details[c.Name()] = map[string]any{
			"status":   r.Status.String(),
			"message":  r.Message,
			"duration": time.Since(began).String(),
		}
		if r.Status > status {
			status = r.Status
		}
	}

	var message string
	switch status {
	case StatusHealthy:
		message = "all caches healthy"
	case StatusDegraded:
		message = "some caches near capacity"
	default:
		message = "some caches failed"
	}

	return Result{
		Status:    status,
		Message:   message,
		Details:   details,
		Duration:  time.Since(start),
		Timestamp: start,
	}
}
