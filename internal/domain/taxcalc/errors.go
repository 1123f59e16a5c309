package taxcalc

import (
	"errors"
	"fmt"
)

// ErrInvalidInput es el error base de toda falla de validación del calculador.
var ErrInvalidInput = errors.New("taxcalc: entrada inválida")

// ValidationError identifica el campo que impidió el cálculo.
// Field usa rutas tipo "items[2].discount" o "taxRates[0].rate".
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("taxcalc: %s: %s", e.Field, e.Reason)
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
