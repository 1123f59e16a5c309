package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate tasa de impuesto configurada por la empresa (TVA, timbre, taxe communale...).
// Rate es porcentaje (18 = 18%). Position fija el orden de aplicación en modo sequence.
type TaxRate struct {
	ID        string
	CompanyID string
	Name      string // único por empresa
	Rate      decimal.Decimal
	Position  int
	CreatedAt time.Time
}
