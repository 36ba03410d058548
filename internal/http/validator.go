package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookshelf/internal/library"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("isbn_length", validateISBNLength)
}

// validateISBNLength checks the normalized length only; charset is not
// part of the contract.
func validateISBNLength(fl validator.FieldLevel) bool {
	return library.ValidISBNLength(library.NormalizeISBN(fl.Field().String()))
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func ValidateStruct(s interface{}) []ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var errors []ValidationError
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()

		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "isbn_length":
			message = fmt.Sprintf("%s must be 10 or 13 characters after removing hyphens and spaces", field)
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", field, err.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		fieldName := strings.ToLower(field[:1]) + field[1:]
		errors = append(errors, ValidationError{
			Field:   fieldName,
			Message: message,
		})
	}

	return errors
}
