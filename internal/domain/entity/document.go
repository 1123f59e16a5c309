package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento comercial.
const (
	DocumentInvoice      = "invoice"
	DocumentQuote        = "quote"
	DocumentDeliveryNote = "delivery_note"
)

// Document cabecera de factura, devis o bon de livraison.
// Los totales se guardan con precisión completa tal como los devuelve el calculador.
type Document struct {
	ID                  string
	CompanyID           string
	UserID              string
	Type                string
	Number              string
	ClientName          string
	Date                time.Time
	Currency            string
	AmountBasis         string // HT | TTC
	TaxOperation        string // cumul | sequence
	DiscountAmount      decimal.Decimal
	DiscountType        string // percent | flat | vacío
	TotalWithoutTaxes   decimal.Decimal
	TotalTax            decimal.Decimal
	OrderDiscountAmount decimal.Decimal
	TotalWithTaxes      decimal.Decimal
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DocumentItem línea de un documento.
type DocumentItem struct {
	ID           string
	DocumentID   string
	Position     int
	Description  string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	HasTax       bool
	Discount     decimal.Decimal
	DiscountType string
}

// DocumentTax monto de una tasa en el documento (snapshot de nombre y porcentaje).
type DocumentTax struct {
	ID         string
	DocumentID string
	Position   int
	TaxName    string
	Rate       decimal.Decimal
	Amount     decimal.Decimal
}
