package httpserver

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/antonskv/shop_backend/internal/apperr"
)

// requestValidator adapts go-playground/validator to echo's Validator
// interface. Shape failures come back as the same coded envelope the
// services use, with the offending JSON fields listed.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	return &requestValidator{validate: v}
}

func (rv *requestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation("INVALID_DATA", "Некорректное тело запроса")
	}

	var fields []string
	for _, fe := range verrs {
		if fe.Tag() == "email" {
			return apperr.Validation("INVALID_EMAIL", "Некорректный email")
		}
		fields = append(fields, jsonField(fe.Field()))
	}
	return apperr.Validation("MISSING_FIELDS", "Требуются %s", strings.Join(fields, ", "))
}

// jsonField lowercases the leading rune so Go field names read like the
// request's JSON keys.
func jsonField(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
