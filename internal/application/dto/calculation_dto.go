package dto

import "github.com/shopspring/decimal"

// LineItemRequest línea a calcular.
type LineItemRequest struct {
	Description  string          `json:"description,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	HasTax       bool            `json:"has_tax"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountType string          `json:"discount_type,omitempty"`
}

// OrderDiscountRequest descuento global opcional.
type OrderDiscountRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

// CalculationRequest body para POST /api/calculations.
// AmountBasis y TaxOperation vacíos toman la configuración de la empresa.
type CalculationRequest struct {
	Items         []LineItemRequest     `json:"items" validate:"dive"`
	AmountBasis   string                `json:"amount_basis,omitempty"`
	TaxOperation  string                `json:"tax_operation,omitempty"`
	OrderDiscount *OrderDiscountRequest `json:"order_discount,omitempty"`
}

// TaxAmountResponse monto por tasa.
type TaxAmountResponse struct {
	TaxName  string          `json:"tax_name"`
	TotalTax decimal.Decimal `json:"total_tax"`
}

// CalculationTotals totales calculados.
type CalculationTotals struct {
	TotalWithoutTaxes   decimal.Decimal     `json:"total_without_taxes"`
	TotalTax            decimal.Decimal     `json:"total_tax"`
	OrderDiscountAmount decimal.Decimal     `json:"order_discount_amount"`
	TotalWithTaxes      decimal.Decimal     `json:"total_with_taxes"`
	Taxes               []TaxAmountResponse `json:"taxes"`
}

// CalculationResponse resultado con precisión completa y, si se pidió, copia redondeada.
type CalculationResponse struct {
	AmountBasis  string             `json:"amount_basis"`
	TaxOperation string             `json:"tax_operation"`
	Currency     string             `json:"currency,omitempty"`
	Totals       CalculationTotals  `json:"totals"`
	Rounded      *CalculationTotals `json:"rounded,omitempty"`
}
