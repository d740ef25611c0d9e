package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("cropyear", validCropYear)
	}
}

// validCropYear bounds crop years to a plausible range so typos like 224 or
// 20250 fail at binding time.
func validCropYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= 1980 && year <= 2100
}
