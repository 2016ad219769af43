package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrorDetail describe un campo que falló la validación estructural.
type ErrorDetail struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

var validate = validator.New()

// ValidateStruct valida los tags `validate` de un DTO y devuelve el detalle
// por campo; nil si todo es válido.
func ValidateStruct(data interface{}) []ErrorDetail {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		// validate.Struct sobre algo que no es struct devuelve
		// InvalidValidationError, sin detalle por campo.
		return []ErrorDetail{{Field: "payload", Tag: "invalid"}}
	}
	var details []ErrorDetail
	for _, fe := range fieldErrors {
		details = append(details, ErrorDetail{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return details
}
