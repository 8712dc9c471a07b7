// Package validator provides the input validation rules for investor-supplied
// strings, plus their registration with Gin's binding engine. The rules are
// pure predicates: same input, same answer, and malformed input simply
// returns false.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("person_name", validatePersonName)
		_ = v.RegisterValidation("strong_password", validateStrongPassword)
		_ = v.RegisterValidation("date_shape", validateDateShape)
		_ = v.RegisterValidation("card_number", validateCardNumber)
		_ = v.RegisterValidation("asset_state", validateAssetState)
	}
}

func validatePersonName(fl validator.FieldLevel) bool {
	return IsValidName(fl.Field().String())
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return IsValidPassword(fl.Field().String())
}

func validateDateShape(fl validator.FieldLevel) bool {
	return IsValidDateFormat(fl.Field().String())
}

func validateCardNumber(fl validator.FieldLevel) bool {
	return IsValidCardNumber(fl.Field().String())
}

func validateAssetState(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "new", "active", "frozen", "sold":
		return true
	}
	return false
}
