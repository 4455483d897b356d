package validation

import (
	"taskdash/internal/domain"
)

// TaskValidator provides validation for task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWith creates a task validator sharing an existing validator
func NewTaskValidatorWith(validator *Validator) *TaskValidator {
	return &TaskValidator{
		validator: validator,
	}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimString(title)

	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}

	if !tv.validator.IsValidTitleLength(trimmed) {
		validationError.AddInvalidLengthError("title", trimmed,
			tv.validator.getTitleMinLength(), tv.validator.getTitleMaxLength())
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidatePriority validates an optional task priority
func (tv *TaskValidator) ValidatePriority(priority domain.Priority) error {
	if !priority.IsValid() {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("priority", priority, "must be low, medium or high")
		return validationError
	}
	return nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ValidateForCreation validates the fields of a task creation request
func (tv *TaskValidator) ValidateForCreation(input domain.TaskCreate) error {
	validationError := NewValidationError()

	if titleErr := tv.ValidateTitle(input.Title); titleErr != nil {
		if titleValidationErr, ok := titleErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, titleValidationErr.Errors...)
		}
	}

	if !input.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", input.Priority, "must be low, medium or high")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateForUpdate validates a partial update. Nil fields are skipped.
func (tv *TaskValidator) ValidateForUpdate(id int64, input domain.TaskUpdate) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidTaskID(id) {
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
	}

	if input.Title != nil {
		if titleErr := tv.ValidateTitle(*input.Title); titleErr != nil {
			if titleValidationErr, ok := titleErr.(*ValidationError); ok {
				validationError.Errors = append(validationError.Errors, titleValidationErr.Errors...)
			}
		}
	}

	if input.Priority != nil && !input.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", *input.Priority, "must be low, medium or high")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// GetValidTitle returns a cleaned task title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimString(title), nil
}
