package handlers

import (
	"sync"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the domain-backed binding tags used by the DTOs:
// "currency" for ISO 4217 style codes and "holdertype" for account holder types.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			_, err := domain.NewCurrency(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("holdertype", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseHolderType(fl.Field().String())
			return err == nil
		})
	})
}
