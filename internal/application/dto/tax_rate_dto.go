package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTaxRateRequest body para POST /api/tax-rates.
type CreateTaxRateRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=60"`
	Rate     decimal.Decimal `json:"rate" validate:"gte=0"`
	Position int             `json:"position" validate:"gte=0"`
}

// TaxRateResponse tasa en respuestas.
type TaxRateResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	Position  int             `json:"position"`
	CreatedAt time.Time       `json:"created_at"`
}

// TaxRateListResponse tasas de la empresa en orden de aplicación.
type TaxRateListResponse struct {
	Items []TaxRateResponse `json:"items"`
}
