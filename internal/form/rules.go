package form

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule validates a single field value. A nil return means the value passes.
type Rule func(value string) error

// ruleError is a validation failure message. It is never surfaced as an
// API error, only collected into per-field messages.
type ruleError string

func (e ruleError) Error() string { return string(e) }

var (
	emailPattern        = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,4}$`)
	cardNumberPattern   = regexp.MustCompile(`^[0-9]{16}$`)
	securityCodePattern = regexp.MustCompile(`^[0-9]{3}$`)
)

// Required fails on an empty value. A whitespace-only value passes; that
// case belongs to NotOnlyWhitespace.
func Required() Rule {
	return func(value string) error {
		if value == "" {
			return ruleError("is required")
		}
		return nil
	}
}

// MinLength fails when a non-empty value is shorter than n characters.
// Empty values pass so that Required reports the missing value instead.
func MinLength(n int) Rule {
	return func(value string) error {
		if value == "" {
			return nil
		}
		if utf8.RuneCountInString(value) < n {
			return ruleError(fmt.Sprintf("must be at least %d characters", n))
		}
		return nil
	}
}

// NotOnlyWhitespace fails when the value is non-empty but trims to nothing.
func NotOnlyWhitespace() Rule {
	return func(value string) error {
		if value != "" && strings.TrimSpace(value) == "" {
			return ruleError("must not be only whitespace")
		}
		return nil
	}
}

// Pattern fails when a non-empty value does not match the given expression.
func Pattern(re *regexp.Regexp, message string) Rule {
	return func(value string) error {
		if value == "" {
			return nil
		}
		if !re.MatchString(value) {
			return ruleError(message)
		}
		return nil
	}
}
