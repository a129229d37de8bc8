package validation

import (
	"net/mail"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"tempus/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator using default limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a new validator using the configured limits
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string's rune count is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidProjectNameLength checks a project name against the configured limit
func (v *Validator) IsValidProjectNameLength(name string) bool {
	return v.IsValidStringLength(name, 1, v.projectNameMaxLength())
}

// IsValidFieldLength checks an optional free-text field against the configured limit
func (v *Validator) IsValidFieldLength(s string) bool {
	return v.IsValidStringLength(s, 0, v.fieldMaxLength())
}

// HasControlCharacters reports whether s contains newlines, tabs or other control runes
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// IsValidEmail checks that s is a bare address such as "me@example.com"
func (v *Validator) IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// IsValidDuration checks that a recorded duration is not negative
func (v *Validator) IsValidDuration(duration time.Duration) bool {
	return duration >= 0
}

// IsReasonableDate checks if a date is within reasonable bounds
func (v *Validator) IsReasonableDate(t time.Time) bool {
	now := time.Now()
	// Allow dates from 10 years ago to 1 year in the future
	tenYearsAgo := now.AddDate(-10, 0, 0)
	oneYearFromNow := now.AddDate(1, 0, 0)

	return t.After(tenYearsAgo) && t.Before(oneYearFromNow)
}

// projectNameMaxLength returns configured maximum project name length or default
func (v *Validator) projectNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.ProjectNameMaxLength
	}
	return 255
}

// fieldMaxLength returns configured maximum free-text field length or default
func (v *Validator) fieldMaxLength() int {
	if v.config != nil {
		return v.config.Validation.FieldMaxLength
	}
	return 1024
}
