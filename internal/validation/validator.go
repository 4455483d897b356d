package validation

import (
	"regexp"
	"strings"
	"time"

	"taskdash/internal/config"
)

// DueDateFormat is the calendar-date layout accepted for due dates.
const DueDateFormat = "2006-01-02"

// emailRegex accepts the usual something@domain.tld shape. The backend
// performs its own stricter check; this only catches obvious typos
// before a request is made.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance using default limits
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTitleLength checks if a task title length is within configured limits
func (v *Validator) IsValidTitleLength(title string) bool {
	length := len(strings.TrimSpace(title))
	return length >= v.getTitleMinLength() && length <= v.getTitleMaxLength()
}

// IsValidTaskID checks if a task ID is valid (positive)
func (v *Validator) IsValidTaskID(id int64) bool {
	return id > 0
}

// IsValidEmail checks if a string looks like an email address
func (v *Validator) IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsValidPasswordLength checks if a password meets the configured minimum
func (v *Validator) IsValidPasswordLength(password string) bool {
	return len(password) >= v.getPasswordMinLength()
}

// ParseDueDate parses a calendar date in DueDateFormat
func (v *Validator) ParseDueDate(value string) (time.Time, bool) {
	parsed, err := time.Parse(DueDateFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// TrimString trims whitespace and returns the cleaned string
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}

// getTitleMinLength returns configured minimum title length or default
func (v *Validator) getTitleMinLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMinLength
	}
	return 1
}

// getTitleMaxLength returns configured maximum title length or default
func (v *Validator) getTitleMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMaxLength
	}
	return 255
}

// getPasswordMinLength returns configured minimum password length or default
func (v *Validator) getPasswordMinLength() int {
	if v.config != nil {
		return v.config.Validation.PasswordMinLength
	}
	return 8
}
