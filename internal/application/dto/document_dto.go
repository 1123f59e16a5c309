package dto

import (
	"github.com/shopspring/decimal"
)

// CreateDocumentRequest body para POST /api/documents.
type CreateDocumentRequest struct {
	Type          string                `json:"type" validate:"required,oneof=invoice quote delivery_note"`
	Number        string                `json:"number,omitempty" validate:"omitempty,max=40"`
	ClientName    string                `json:"client_name" validate:"required,max=200"`
	Date          string                `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string                `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Items         []LineItemRequest     `json:"items" validate:"required,min=1,dive"`
	AmountBasis   string                `json:"amount_basis,omitempty"`
	TaxOperation  string                `json:"tax_operation,omitempty"`
	OrderDiscount *OrderDiscountRequest `json:"order_discount,omitempty"`
}

// DocumentItemResponse línea en la respuesta.
type DocumentItemResponse struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	HasTax       bool            `json:"has_tax"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountType string          `json:"discount_type,omitempty"`
}

// DocumentTaxResponse snapshot de una tasa aplicada.
type DocumentTaxResponse struct {
	TaxName string          `json:"tax_name"`
	Rate    decimal.Decimal `json:"rate"`
	Amount  decimal.Decimal `json:"amount"`
}

// DocumentResponse documento con detalle para GET /api/documents/:id.
type DocumentResponse struct {
	ID                  string                 `json:"id"`
	CompanyID           string                 `json:"company_id"`
	Type                string                 `json:"type"`
	Number              string                 `json:"number"`
	ClientName          string                 `json:"client_name"`
	Date                string                 `json:"date"`
	Currency            string                 `json:"currency"`
	AmountBasis         string                 `json:"amount_basis"`
	TaxOperation        string                 `json:"tax_operation"`
	DiscountAmount      decimal.Decimal        `json:"discount_amount"`
	DiscountType        string                 `json:"discount_type,omitempty"`
	TotalWithoutTaxes   decimal.Decimal        `json:"total_without_taxes"`
	TotalTax            decimal.Decimal        `json:"total_tax"`
	OrderDiscountAmount decimal.Decimal        `json:"order_discount_amount"`
	TotalWithTaxes      decimal.Decimal        `json:"total_with_taxes"`
	Notes               string                 `json:"notes,omitempty"`
	Items               []DocumentItemResponse `json:"items,omitempty"`
	Taxes               []DocumentTaxResponse  `json:"taxes,omitempty"`
}

// DocumentListResponse lista paginada (sin líneas).
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
