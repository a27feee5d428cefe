package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ErrInvalidPattern is returned when a regular expression fails to compile.
var ErrInvalidPattern = errors.New("pattern: invalid pattern")

// Kind identifies the shape of a Pattern.
type Kind int

const (
	// KindNone is the unset pattern.
	KindNone Kind = iota
	// KindList is a comma separated list of names.
	KindList
	// KindSequence is an ordered sequence of names.
	KindSequence
	// KindRegexp is a regular expression.
	KindRegexp
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindList:
		return "list"
	case KindSequence:
		return "sequence"
	case KindRegexp:
		return "regexp"
	default:
		return "unknown"
	}
}

// Pattern is an include/exclude specification.
type Pattern struct {
	kind  Kind
	list  string
	names []string
	re    *regexp.Regexp
}

// None returns the unset pattern.
func None() Pattern {
	return Pattern{}
}

// List returns a pattern matching any of the comma separated names in s.
// Names are compared exactly; surrounding whitespace is significant.
func List(s string) Pattern {
	return Pattern{kind: KindList, list: s}
}

// Sequence returns a pattern matching any of names.
func Sequence(names ...string) Pattern {
	return Pattern{kind: KindSequence, names: slices.Clone(names)}
}

// Regexp returns a pattern matching names accepted by re.
// A nil re yields the unset pattern.
func Regexp(re *regexp.Regexp) Pattern {
	if re == nil {
		return Pattern{}
	}
	return Pattern{kind: KindRegexp, re: re}
}

// Compile parses expr as a regular expression pattern.
func Compile(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, expr, err)
	}
	return Regexp(re), nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Kind returns the shape of the pattern.
func (p Pattern) Kind() Kind {
	return p.kind
}

// IsSet reports whether the pattern was configured.
func (p Pattern) IsSet() bool {
	return p.kind != KindNone
}

// Admits reports whether name is matched by the pattern.
func (p Pattern) Admits(name string) bool {
	switch p.kind {
	case KindList:
		return slices.Contains(strings.Split(p.list, ","), name)
	case KindSequence:
		return slices.Contains(p.names, name)
	case KindRegexp:
		return p.re.MatchString(name)
	default:
		return false
	}
}

// Equal reports whether p and o match by the same rule.
func (p Pattern) Equal(o Pattern) bool {
	if p.kind != o.kind {
		return false
	}
	switch p.kind {
	case KindList:
		return p.list == o.list
	case KindSequence:
		return slices.Equal(p.names, o.names)
	case KindRegexp:
		return p.re.String() == o.re.String()
	default:
		return true
	}
}

// String renders the pattern for logs.
func (p Pattern) String() string {
	switch p.kind {
	case KindList:
		return p.list
	case KindSequence:
		return "[" + strings.Join(p.names, ",") + "]"
	case KindRegexp:
		return "/" + p.re.String() + "/"
	default:
		return ""
	}
}

// Admits reports whether name is matched by p. Unset patterns match nothing.
func Admits(p Pattern, name string) bool {
	return p.Admits(name)
}
