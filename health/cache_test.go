package health

import (
	"context"
	"errors"
	"testing"

	"github.com/jonwraymond/keepalive/cache"
)

type fakeSizer struct {
	len, max int
	err      error
}

func (f fakeSizer) Len() int      { return f.len }
func (f fakeSizer) Max() int      { return f.max }
func (f fakeSizer) Verify() error { return f.err }

func TestCacheChecker_Status(t *testing.T) {
	broken := errors.New("recency drift")

	tests := []struct {
		name   string
		source Sizer
		ratio  float64
		want   Status
	}{
		{"unbounded", fakeSizer{len: 50}, 0.5, StatusHealthy},
		{"below warning", fakeSizer{len: 2, max: 10}, 0.5, StatusHealthy},
		{"at warning", fakeSizer{len: 5, max: 10}, 0.5, StatusDegraded},
		{"full default ratio", fakeSizer{len: 10, max: 10}, 0, StatusDegraded},
		{"not full default ratio", fakeSizer{len: 9, max: 10}, 0, StatusHealthy},
		{"verify fails", fakeSizer{len: 1, max: 10, err: broken}, 0.5, StatusUnhealthy},
		{"nil source", nil, 0.5, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCacheChecker("test", tt.source, CacheCheckerConfig{WarningRatio: tt.ratio})
			result := c.Check(context.Background())
			if result.Status != tt.want {
				t.Errorf("Status = %v, want %v (message %q)", result.Status, tt.want, result.Message)
			}
		})
	}
}

func TestCacheChecker_VerifyErrorWrapped(t *testing.T) {
	broken := errors.New("recency drift")
	c := NewCacheChecker("test", fakeSizer{err: broken}, CacheCheckerConfig{})

	result := c.Check(context.Background())
	if !errors.Is(result.Error, ErrCheckFailed) {
		t.Errorf("Error = %v, want ErrCheckFailed", result.Error)
	}
	if !errors.Is(result.Error, broken) {
		t.Errorf("Error = %v, want the Verify error wrapped", result.Error)
	}
}

func TestCacheChecker_Store(t *testing.T) {
	s := cache.NewStore[string](4)
	s.Insert("a", cache.Entry[string]{Name: "A", Instance: "a"}, nil, "")

	c := NewCacheChecker("", s, CacheCheckerConfig{WarningRatio: 0.75})
	if c.Name() != "keepalive" {
		t.Errorf("Name() = %q, want keepalive", c.Name())
	}

	result := c.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Fatalf("Status = %v, want healthy", result.Status)
	}
	if result.Details["entries"] != 1 || result.Details["max"] != 4 {
		t.Errorf("Details = %v", result.Details)
	}
}

func TestCacheChecker_CancelledContext(t *testing.T) {
	c := NewCacheChecker("test", fakeSizer{}, CacheCheckerConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if result := c.Check(ctx); result.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", result.Status)
	}
}

func TestCheckAll(t *testing.T) {
	ok := NewCacheChecker("inbox", fakeSizer{len: 1, max: 10}, CacheCheckerConfig{})
	full := NewCacheChecker("drafts", fakeSizer{len: 10, max: 10}, CacheCheckerConfig{})

	result := CheckAll(context.Background(), ok, full)
	if result.Status != StatusDegraded {
		t.Errorf("Status = %v, want degraded", result.Status)
	}
	if _, found := result.Details["drafts"]; !found {
		t.Error("expected per-checker details for drafts")
	}

	if result := CheckAll(context.Background()); result.Status != StatusHealthy {
		t.Errorf("empty CheckAll Status = %v, want healthy", result.Status)
	}
}
