// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Namespace() + " is required"
	case "min":
		return err.Namespace() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Namespace() + " must be at most " + err.Param() + " characters"
	case "oneof":
		return err.Namespace() + " must be one of: " + err.Param()
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Namespace(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Namespace(), err.Param())
	default:
		return err.Namespace() + " is invalid"
	}
}
