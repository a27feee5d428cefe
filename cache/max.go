package cache

import (
	"math"
	"reflect"
	"strings"
)

// ParseMax converts a user supplied bound to an entry count.
//
// Integer kinds are used as is. Strings are read like a lenient integer
// parse: leading whitespace is skipped and digits are consumed up to the
// first non-digit, so "5px" yields 5. Anything else, or a result that is
// not positive, reports ok=false and the store stays unbounded.
func ParseMax(v any) (max int, ok bool) {
	var n int64
	switch val := v.(type) {
	case nil:
		return 0, false
	case string:
		parsed, ok := parseLeadingInt(val)
		if !ok {
			return 0, false
		}
		n = parsed
	case float32:
		return fromFloat(float64(val))
	case float64:
		return fromFloat(val)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n = rv.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			u := rv.Uint()
			if u > math.MaxInt64 {
				return math.MaxInt, true
			}
			n = int64(u)
		default:
			return 0, false
		}
	}

	if n <= 0 {
		return 0, false
	}
	if n > math.MaxInt {
		return math.MaxInt, true
	}
	return int(n), true
}

func fromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || f < 1 {
		return 0, false
	}
	if f >= math.MaxInt64 {
		return math.MaxInt, true
	}
	return int(f), true
}

func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	var n int64
	digits := 0
	for ; digits < len(s); digits++ {
		c := s[digits]
		if c < '0' || c > '9' {
			break
		}
		if n > (math.MaxInt64-int64(c-'0'))/10 {
			n = math.MaxInt64
			continue
		}
		n = n*10 + int64(c-'0')
	}

	if digits == 0 {
		return 0, false
	}
	if neg {
		return -n, true
	}
	return n, true
}
