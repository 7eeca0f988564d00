package validation

import (
	"net/mail"
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted for entry dates and list bounds. Values without a
// zone are taken as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Validator provides common validation utilities
type Validator struct {
	layouts []string
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{layouts: dateLayouts}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a trimmed string length is within [min, max].
// A max of 0 means no upper bound.
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len([]rune(strings.TrimSpace(s)))
	if length < min {
		return false
	}
	return max <= 0 || length <= max
}

// ParseDate parses s with the first accepted layout that fits.
func (v *Validator) ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range v.layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNonNegativeInt parses a base-10 integer >= 0.
func (v *Validator) ParseNonNegativeInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// IsValidEmail checks for a bare address of the form local@domain.
func (v *Validator) IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
