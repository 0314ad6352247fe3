// Pure field validation shared by the service layer. Nothing here touches
// the database; every check runs before any write happens.
package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Length limits count runes, not bytes.
const (
	MaxNameLen = 200
	MaxURLLen  = 500

	MinPriority = 1
	MaxPriority = 5
)

// Error rejects a single field of an incoming payload.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newError(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// TrimNonEmpty strips surrounding whitespace and rejects values that are
// empty afterwards. Used for company_name and role_title.
func TrimNonEmpty(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", newError(field, "must not be empty")
	}
	if utf8.RuneCountInString(s) > MaxNameLen {
		return "", newError(field, "must be at most %d characters", MaxNameLen)
	}
	return s, nil
}

// Optional length-checks a nullable string field such as location or source.
func Optional(field string, s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	if utf8.RuneCountInString(*s) > MaxNameLen {
		return nil, newError(field, "must be at most %d characters", MaxNameLen)
	}
	return s, nil
}

// NormalizeURL is deliberately lenient: it does not require a well-formed
// scheme, it only prefixes bare "www." hosts and rejects values with
// embedded whitespace. Empty input normalizes to nil.
func NormalizeURL(s string) (*string, error) {
	u := strings.TrimSpace(s)
	if u == "" {
		return nil, nil
	}
	if strings.HasPrefix(u, "www.") {
		u = "https://" + u
	}
	if strings.ContainsFunc(u, unicode.IsSpace) {
		return nil, newError("apply_url", "must not contain whitespace")
	}
	if utf8.RuneCountInString(u) > MaxURLLen {
		return nil, newError("apply_url", "must be at most %d characters", MaxURLLen)
	}
	return &u, nil
}

// Priority rejects values outside [1,5].
func Priority(p int) error {
	if p < MinPriority || p > MaxPriority {
		return newError("priority", "must be between %d and %d", MinPriority, MaxPriority)
	}
	return nil
}
