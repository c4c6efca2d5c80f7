package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-()]{5,19}$`)
)

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("user_role", validateUserRole)
	_ = validate.RegisterValidation("phone", validatePhone)
	_ = validate.RegisterValidation("found_status", validateFoundStatus)
	_ = validate.RegisterValidation("lost_decision", validateLostDecision)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Admin", "User":
		return true
	}
	return false
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validateFoundStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "PENDING", "CLAIMED", "REJECTED":
		return true
	}
	return false
}

// lost reports are only ever decided, never put back to PENDING
func validateLostDecision(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "APPROVED", "REJECTED":
		return true
	}
	return false
}
