package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ISO 4217 codes for the currencies providers actually settle in
var supportedCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"GBP": true,
	"AED": true,
	"SGD": true,
	"INR": true,
	"JPY": true,
}

// RegisterCustomValidators wires custom binding rules into gin's validator.
// Must be called once before the router starts serving.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("currency", validateCurrency)
	}
}

func validateCurrency(fl validator.FieldLevel) bool {
	return supportedCurrencies[fl.Field().String()]
}
