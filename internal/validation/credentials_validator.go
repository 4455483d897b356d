package validation

// CredentialsValidator provides validation for login and signup input
type CredentialsValidator struct {
	validator *Validator
}

// NewCredentialsValidator creates a new credentials validator with default limits
func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{
		validator: NewValidator(),
	}
}

// NewCredentialsValidatorWith creates a credentials validator sharing an existing validator
func NewCredentialsValidatorWith(validator *Validator) *CredentialsValidator {
	return &CredentialsValidator{
		validator: validator,
	}
}

// ValidateEmail validates an email address
func (cv *CredentialsValidator) ValidateEmail(email string) error {
	validationError := NewValidationError()

	if !cv.validator.IsNonEmptyString(email) {
		validationError.AddRequiredError("email")
		return validationError
	}

	if !cv.validator.IsValidEmail(email) {
		validationError.AddInvalidFormatError("email", email, "name@example.com")
		return validationError
	}

	return nil
}

// ValidateLogin validates login credentials. The password only needs to
// be present; the configured minimum applies to new passwords, not
// existing ones.
func (cv *CredentialsValidator) ValidateLogin(email, password string) error {
	validationError := NewValidationError()

	if emailErr := cv.ValidateEmail(email); emailErr != nil {
		if emailValidationErr, ok := emailErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, emailValidationErr.Errors...)
		}
	}

	if password == "" {
		validationError.AddRequiredError("password")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateSignup validates signup input
func (cv *CredentialsValidator) ValidateSignup(email, password, name string) error {
	validationError := NewValidationError()

	if emailErr := cv.ValidateEmail(email); emailErr != nil {
		if emailValidationErr, ok := emailErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, emailValidationErr.Errors...)
		}
	}

	if password == "" {
		validationError.AddRequiredError("password")
	} else if !cv.validator.IsValidPasswordLength(password) {
		validationError.AddInvalidLengthError("password", nil, cv.validator.getPasswordMinLength(), 0)
	}

	if !cv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("name")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}
