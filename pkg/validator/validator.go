// Package validator envuelve go-playground/validator para los DTO de entrada.
package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// FieldError campo inválido con la regla que falló.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Error agrupa los campos inválidos de una petición.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" ("+f.Rule+")")
	}
	return "validación: " + strings.Join(parts, ", ")
}

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Los nombres de campo se reportan con su etiqueta json.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// decimal.Decimal se valida como número (gte/lte con parámetros numéricos).
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			if d, ok := v.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
	})
	return validate
}

// Struct valida req según sus etiquetas `validate`. Devuelve *Error si hay campos inválidos.
func Struct(req interface{}) error {
	err := instance().Struct(req)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(vErrs))}
	for _, fe := range vErrs {
		out.Fields = append(out.Fields, FieldError{Field: trimRoot(fe.Namespace()), Rule: fe.Tag()})
	}
	return out
}

// trimRoot quita el nombre del struct raíz: "CreateTaxRateRequest.name" -> "name".
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
