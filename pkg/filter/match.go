package filter

import (
	"cmp"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// PropertySource provides property values to be matched.
type PropertySource interface {
	GetProperty(name string) any
}

// Match evaluates the conjunction of the given filters for a
// property source.
func Match(src PropertySource, filters ...Filter) bool {
	for _, f := range filters {
		if !f.Match(src) {
			return false
		}
	}
	return true
}

func (f Filter) Match(src PropertySource) bool {
	switch f.Operation {
	case OpAnd:
		return Match(src, f.Children...)
	case OpOr:
		for _, c := range f.Children {
			if c.Match(src) {
				return true
			}
		}
		return false
	case OpEqual:
		return CompareValues(src.GetProperty(f.Property), f.Value) == 0
	case OpGreater:
		return CompareValues(src.GetProperty(f.Property), f.Value) > 0
	case OpLess:
		return CompareValues(src.GetProperty(f.Property), f.Value) < 0
	case OpGreaterEqual:
		return CompareValues(src.GetProperty(f.Property), f.Value) >= 0
	case OpLessEqual:
		return CompareValues(src.GetProperty(f.Property), f.Value) <= 0
	case OpIn:
		v := src.GetProperty(f.Property)
		for _, e := range f.Values {
			if CompareValues(v, e) == 0 {
				return true
			}
		}
		return false
	case OpLike:
		p, ok := f.Value.(string)
		if !ok {
			return false
		}
		return LikePattern(p).MatchString(cast.ToString(src.GetProperty(f.Property)))
	}
	return false
}

// CompareValues compares two property values. If both values are numeric
// (or numeric strings) they are compared as numbers, otherwise their
// string representations are compared. nil is lower than any other value.
func CompareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	fa, erra := toNumber(a)
	fb, errb := toNumber(b)
	if erra == nil && errb == nil {
		return cmp.Compare(fa, fb)
	}
	return strings.Compare(cast.ToString(a), cast.ToString(b))
}

func toNumber(v any) (float64, error) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	return cast.ToFloat64E(v)
}

// LikePattern converts a pattern with the wildcards * and ?
// into a regular expression matching the complete string.
func LikePattern(p string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range p {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}
