package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

type minLength int

// MinLength requires a string of at least n characters (runes).
func MinLength(n int) Rule { return minLength(n) }

func (r minLength) Description() string { return fmt.Sprintf("minLength: %d", int(r)) }

func (r minLength) Check(value any) error {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	if l := utf8.RuneCountInString(s); l < int(r) {
		return failf("string length %d is less than minimum %d", l, int(r))
	}
	return nil
}

type maxLength int

// MaxLength requires a string of at most n characters (runes).
func MaxLength(n int) Rule { return maxLength(n) }

func (r maxLength) Description() string { return fmt.Sprintf("maxLength: %d", int(r)) }

func (r maxLength) Check(value any) error {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	if l := utf8.RuneCountInString(s); l > int(r) {
		return failf("string length %d exceeds maximum %d", l, int(r))
	}
	return nil
}

// PatternRule requires a string to match a regular expression.
type PatternRule struct {
	source string
	re     *regexp.Regexp
}

// Pattern compiles pattern and returns a rule matching strings against it.
// Both bare Go expressions and delimited "/expr/flags" forms are accepted.
func Pattern(pattern string) (*PatternRule, error) {
	re, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &PatternRule{source: pattern, re: re}, nil
}

// Regexp returns the compiled expression.
func (r *PatternRule) Regexp() *regexp.Regexp { return r.re }

// Source returns the pattern as configured.
func (r *PatternRule) Source() string { return r.source }

// Description implements Rule.
func (r *PatternRule) Description() string { return "pattern: " + r.source }

// Check implements Rule.
func (r *PatternRule) Check(value any) error {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	if !r.re.MatchString(s) {
		return failf("string does not match pattern %q", r.source)
	}
	return nil
}

// CompilePattern compiles a bare or delimited pattern.
// A delimited pattern "/expr/flags" is unwrapped; the flags i, m and s map to
// the corresponding Go inline flags, u is accepted and ignored.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	expr := pattern
	if len(pattern) >= 2 && pattern[0] == '/' {
		if end := strings.LastIndexByte(pattern, '/'); end > 0 {
			var inline strings.Builder
			for _, f := range pattern[end+1:] {
				switch f {
				case 'i', 'm', 's':
					inline.WriteRune(f)
				case 'u':
				default:
					return nil, fmt.Errorf("unsupported pattern flag %q", f)
				}
			}
			expr = pattern[1:end]
			if inline.Len() > 0 {
				expr = "(?" + inline.String() + ")" + expr
			}
		}
	}
	return regexp.Compile(expr)
}
