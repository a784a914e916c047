package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Result resultado estructurado de una validación: éxito o lista de mensajes.
// Nunca se retorna error para structs bien formados; un tag malformado
// es error de programación y el validador entra en pánico (semántica de validator/v10).
type Result struct {
	Success bool
	Errors  []string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate aplica las reglas declaradas en los tags `validate` del struct.
// Las validaciones son puramente estructurales (required, rangos, oneof, email);
// no verifica referencias cruzadas (ej. que un product_id exista).
func Validate(data interface{}) *Result {
	err := validate.Struct(data)
	if err == nil {
		return &Result{Success: true}
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: se invocó con algo que no es struct
		panic(err)
	}
	res := &Result{Success: false}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, describeError(fe))
	}
	return res
}

// describeError traduce un FieldError a un mensaje legible para el caller/UI.
func describeError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: campo requerido", fe.Field())
	case "email":
		return fmt.Sprintf("%s: email inválido", fe.Field())
	case "gt":
		return fmt.Sprintf("%s: debe ser mayor que %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s: debe ser mayor o igual a %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s: mínimo %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s: máximo %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: debe ser uno de [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s: falla la regla %s", fe.Field(), fe.Tag())
	}
}
