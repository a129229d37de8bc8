package validation

import (
	"tempus/internal/config"
	"tempus/internal/domain"
)

// TimeEntryValidator checks entries before they are stored
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator with default limits
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidator()}
}

// NewTimeEntryValidatorWithConfig creates a time entry validator with configured limits
func NewTimeEntryValidatorWithConfig(cfg *config.Config) *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateTimeEntryForCreation validates a finished entry about to be saved
func (tev *TimeEntryValidator) ValidateTimeEntryForCreation(entry domain.TimeEntry) error {
	validationError := NewValidationError()

	if !tev.validator.IsNonEmptyString(entry.ProjectName) {
		validationError.AddRequiredError("project_name")
	} else if !tev.validator.IsValidProjectNameLength(entry.ProjectName) {
		validationError.AddInvalidLengthError("project_name", entry.ProjectName, 1, tev.validator.projectNameMaxLength())
	}
	if tev.validator.HasControlCharacters(entry.ProjectName) {
		validationError.AddInvalidCharacterError("project_name", entry.ProjectName)
	}

	optional := []struct{ field, value string }{
		{"client_name", entry.ClientName},
		{"description", entry.Description},
		{"task", entry.Task},
	}
	for _, f := range optional {
		if !tev.validator.IsValidFieldLength(f.value) {
			validationError.AddInvalidLengthError(f.field, f.value, 0, tev.validator.fieldMaxLength())
		}
	}

	if entry.Email != "" && !tev.validator.IsValidEmail(entry.Email) {
		validationError.AddInvalidFormatError("email", entry.Email, "name@example.com")
	}

	if entry.StartTime.IsZero() {
		validationError.AddRequiredError("start_time")
	} else if !tev.validator.IsReasonableDate(entry.StartTime) {
		validationError.AddInvalidValueError("start_time", entry.StartTime, "must be within reasonable date range")
	}

	if !tev.validator.IsValidDuration(entry.Duration) {
		validationError.AddInvalidRangeError("duration", entry.Duration, "must not be negative")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}
