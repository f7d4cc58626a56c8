package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err := v.RegisterValidation("mobile", mobileValidator)
		if err != nil {
			log.Fatal("register mobile validator failed")
		}
	}
}

var mobileValidator validator.Func = func(fl validator.FieldLevel) bool {
	mobile := fl.Field().String()
	pattern := `^\d{10}$`
	matched, err := regexp.MatchString(pattern, mobile)
	if err != nil {
		return false
	}
	return matched
}
