package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"
)

// ErrMissingEnv indicates a ${VAR} reference to an unset variable.
var ErrMissingEnv = errors.New("config: missing environment variables")

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} references in s. Every referenced variable must
// be set. $$ emits a literal $; a bare $ is left alone so names and patterns
// can contain it.
func expandEnv(s string) (string, error) {
	const dollar = "\x00KEEPALIVE_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollar)

	missing := make(map[string]struct{})
	s = envRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		key := envRefPattern.FindStringSubmatch(ref)[1]
		v, ok := os.LookupEnv(key)
		if !ok {
			missing[key] = struct{}{}
		}
		return v
	})
	if len(missing) > 0 {
		keys := slices.Sorted(maps.Keys(missing))
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(keys, ", "))
	}

	return strings.ReplaceAll(s, dollar, "$"), nil
}

// expandAll expands each field in place, stopping at the first error.
func expandAll(fields map[string]*string) error {
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		v, err := expandEnv(*fields[name])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*fields[name] = v
	}
	return nil
}
