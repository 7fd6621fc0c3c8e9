package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateInput runs struct tags and folds any failure into ErrInvalidInput.
func validateInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
