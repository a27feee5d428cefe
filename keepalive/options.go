package keepalive

import (
	"github.com/jonwraymond/keepalive/cache"
	"github.com/jonwraymond/keepalive/observe"
	"github.com/jonwraymond/keepalive/pattern"
)

// Option configures a Controller.
type Option func(*Controller)

// WithInclude admits only subtrees whose name matches p.
func WithInclude(p pattern.Pattern) Option {
	return func(c *Controller) {
		c.include = p
	}
}

// WithExclude keeps subtrees whose name matches p out of the cache.
func WithExclude(p pattern.Pattern) Option {
	return func(c *Controller) {
		c.exclude = p
	}
}

// WithMax bounds the number of cached subtrees. v may be any integer kind or
// a numeric string; anything unparsable leaves the cache unbounded.
func WithMax(v any) Option {
	return func(c *Controller) {
		c.max, _ = cache.ParseMax(v)
	}
}

// WithKeyer overrides cache key derivation.
func WithKeyer(k cache.Keyer) Option {
	return func(c *Controller) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithRecorder reports controller activity to rec.
func WithRecorder(rec *observe.Recorder) Option {
	return func(c *Controller) {
		if rec != nil {
			c.rec = rec
		}
	}
}

// WithName names the controller in telemetry.
func WithName(name string) Option {
	return func(c *Controller) {
		c.name = name
	}
}
