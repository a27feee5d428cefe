// Package config loads keep-alive controller props from TOML.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jonwraymond/keepalive/cache"
	"github.com/jonwraymond/keepalive/keepalive"
	"github.com/jonwraymond/keepalive/observe"
	"github.com/jonwraymond/keepalive/pattern"
)

// ErrInvalidProps indicates a props document with a value of the wrong shape.
var ErrInvalidProps = errors.New("config: invalid props")

// Props holds the controller props of one keep-alive boundary.
type Props struct {
	Name    string
	Include pattern.Pattern
	Exclude pattern.Pattern
	Max     int             // 0 means unbounded
	Observe *observe.Config // nil when the document has no [observe] table
}

// Default returns props that cache every subtree without a bound.
func Default() Props {
	return Props{}
}

// rawProps is used for initial TOML parsing before patterns are resolved
type rawProps struct {
	Name    string      `toml:"name"`
	Include any         `toml:"include"`
	Exclude any         `toml:"exclude"`
	Max     any         `toml:"max"`
	Observe *rawObserve `toml:"observe"`
}

type rawObserve struct {
	ServiceName string `toml:"service_name"`
	Version     string `toml:"version"`
	Tracing     struct {
		Enabled   bool    `toml:"enabled"`
		Exporter  string  `toml:"exporter"`
		SamplePct float64 `toml:"sample_pct"`
	} `toml:"tracing"`
	Metrics struct {
		Enabled  bool   `toml:"enabled"`
		Exporter string `toml:"exporter"`
	} `toml:"metrics"`
	Logging struct {
		Enabled bool   `toml:"enabled"`
		Level   string `toml:"level"`
	} `toml:"logging"`
}

// Load reads props from the TOML file at path.
// Returns Default() if the file doesn't exist (no error)
// Returns error only if the file exists but is invalid
func Load(path string) (Props, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read props file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML props document.
//
// include and exclude accept a comma-separated string, an array of names,
// or a table { regexp = "..." }. max accepts an integer or a numeric string;
// anything else leaves the cache unbounded. ${VAR} references in name and
// the observe service name and version are expanded from the environment.
func Parse(data []byte) (Props, error) {
	var raw rawProps
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("failed to parse props: %w", err)
	}

	fields := map[string]*string{"name": &raw.Name}
	if raw.Observe != nil {
		fields["observe.service_name"] = &raw.Observe.ServiceName
		fields["observe.version"] = &raw.Observe.Version
	}
	if err := expandAll(fields); err != nil {
		return Default(), err
	}

	include, err := parsePattern(raw.Include, "include")
	if err != nil {
		return Default(), err
	}
	exclude, err := parsePattern(raw.Exclude, "exclude")
	if err != nil {
		return Default(), err
	}

	props := Props{
		Name:    raw.Name,
		Include: include,
		Exclude: exclude,
	}
	if raw.Max != nil {
		props.Max, _ = cache.ParseMax(raw.Max)
	}

	if raw.Observe != nil {
		cfg := observe.Config{
			ServiceName: raw.Observe.ServiceName,
			Version:     raw.Observe.Version,
			Tracing: observe.TracingConfig{
				Enabled:   raw.Observe.Tracing.Enabled,
				Exporter:  raw.Observe.Tracing.Exporter,
				SamplePct: raw.Observe.Tracing.SamplePct,
			},
			Metrics: observe.MetricsConfig{
				Enabled:  raw.Observe.Metrics.Enabled,
				Exporter: raw.Observe.Metrics.Exporter,
			},
			Logging: observe.LoggingConfig{
				Enabled: raw.Observe.Logging.Enabled,
				Level:   raw.Observe.Logging.Level,
			},
		}
		if err := cfg.Validate(); err != nil {
			return Default(), fmt.Errorf("invalid observe section: %w", err)
		}
		props.Observe = &cfg
	}

	return props, nil
}

// parsePattern resolves a decoded include/exclude value.
func parsePattern(v any, field string) (pattern.Pattern, error) {
	switch v := v.(type) {
	case nil:
		return pattern.None(), nil
	case string:
		return pattern.List(v), nil
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return pattern.None(), fmt.Errorf("%w: %s entries must be strings, got %T", ErrInvalidProps, field, item)
			}
			names = append(names, name)
		}
		return pattern.Sequence(names...), nil
	case map[string]any:
		expr, ok := v["regexp"].(string)
		if !ok {
			return pattern.None(), fmt.Errorf("%w: %s table needs a regexp string", ErrInvalidProps, field)
		}
		p, err := pattern.Compile(expr)
		if err != nil {
			return pattern.None(), fmt.Errorf("%w: %s: %w", ErrInvalidProps, field, err)
		}
		return p, nil
	default:
		return pattern.None(), fmt.Errorf("%w: %s has unsupported type %T", ErrInvalidProps, field, v)
	}
}

// Options converts props into controller options.
func (p Props) Options() []keepalive.Option {
	return []keepalive.Option{
		keepalive.WithName(p.Name),
		keepalive.WithInclude(p.Include),
		keepalive.WithExclude(p.Exclude),
		keepalive.WithMax(p.Max),
	}
}

// Apply pushes reloaded props onto a live controller. Changed patterns prune
// the cache; a smaller max evicts immediately.
func (p Props) Apply(ctx context.Context, c *keepalive.Controller) {
	c.SetInclude(ctx, p.Include)
	c.SetExclude(ctx, p.Exclude)
	c.SetMax(ctx, p.Max)
}

// Telemetry starts the providers named by the [observe] table and returns a
// Recorder for WithRecorder. Without the table it returns a no-op Recorder.
// shutdown is never nil.
func (p Props) Telemetry(ctx context.Context) (*observe.Recorder, func(context.Context) error, error) {
	nop := func(context.Context) error { return nil }
	if p.Observe == nil {
		return observe.NopRecorder(), nop, nil
	}

	obs, err := observe.NewObserver(ctx, *p.Observe)
	if err != nil {
		return nil, nop, fmt.Errorf("failed to start telemetry: %w", err)
	}
	rec, err := observe.RecorderFromObserver(obs)
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, nop, fmt.Errorf("failed to build recorder: %w", err)
	}
	return rec, obs.Shutdown, nil
}
