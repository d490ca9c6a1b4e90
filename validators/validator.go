package validators

import "github.com/go-playground/validator/v10"

// CustomValidator adapts go-playground/validator to echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a CustomValidator
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate runs the struct tags of i and returns validator.ValidationErrors
// when any of them fail.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
