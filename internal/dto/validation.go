package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// acctCodeRe matches the hierarchical account code convention: digit groups
// separated by dots, e.g. "100" or "320.01". Length is capped separately by
// the max=20 binding tag.
var acctCodeRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Best effort: RegisterValidation only fails for an empty tag name.
		_ = v.RegisterValidation("acctcode", validAccountCode)
	}
}

func validAccountCode(fl validator.FieldLevel) bool {
	return acctCodeRe.MatchString(fl.Field().String())
}
