package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// RegisterValidations attaches domain-aware binding validators to gin's
// validator engine. Must be called once before routes are registered.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, known := domain.PolicyFor(domain.Category(fl.Field().String()))
		return known
	})

	v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		return domain.ValidPaymentMethod(domain.PaymentMethod(fl.Field().String()))
	})
}
