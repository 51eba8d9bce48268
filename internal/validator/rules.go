package validator

import (
	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует доменные правила валидации.
func registerCustomRules(v *validator.Validate) error {
	// shipping_mode: способ перевозки посылки
	if err := v.RegisterValidation("shipping_mode", validateShippingMode); err != nil {
		return err
	}
	return nil
}

func validateShippingMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "terrestrial", "air":
		return true
	}
	return false
}
