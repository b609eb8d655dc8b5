package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MaxTagLength bounds a single tag, in runes.
const MaxTagLength = 64

// RegisterCustomValidators adds the "tag" rule to v.
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("tag", ValidateTagRule)
}

// InitValidator registers the custom rules on gin's binding engine.
func InitValidator() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return RegisterCustomValidators(v)
	}
	return nil
}

func ValidateTagRule(fl validator.FieldLevel) bool {
	return ValidateTag(fl.Field().String())
}

// ValidateTag accepts non-blank tags of at most MaxTagLength runes.
func ValidateTag(tag string) bool {
	if strings.TrimSpace(tag) == "" {
		return false
	}
	return utf8.RuneCountInString(tag) <= MaxTagLength
}
