package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	Validate *validator.Validate

	reminderTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

func InitValidator() {
	Validate = NewValidator()
}

// NewValidator returns a validator with the app's custom rules registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("reminder_time", func(fl validator.FieldLevel) bool {
		return reminderTimePattern.MatchString(fl.Field().String())
	})
	return v
}
