package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/jara-travels/booking_api/shared"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("payment_method", validatePaymentMethod)
	validate.RegisterValidation("booking_status", validateBookingStatus)
}

func GetValidator() *validator.Validate {
	return validate
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return shared.ValidPaymentMethod(fl.Field().String())
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	return shared.ValidStatus(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "email":
				message = "Invalid email format"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param() + " characters"
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param() + " characters"
			case "payment_method":
				message = "Invalid payment method"
			case "booking_status":
				message = "Invalid status"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

// FirstValidationMessage flattens a validator error into the single public
// message the booking API reports.
func FirstValidationMessage(err error) string {
	formatted := FormatValidationErrors(err)
	if len(formatted) == 0 {
		return "Invalid request"
	}
	return formatted[0].Message
}
