// Package taxcalc calcula totales HT/TTC, descuentos y desglose de impuestos
// de un documento comercial (factura, devis, bon de livraison).
//
// Es un servicio de dominio puro: sin I/O, sin estado compartido, seguro para
// uso concurrente. Toda la aritmética monetaria usa decimal.Decimal.
package taxcalc

import "github.com/shopspring/decimal"

// DiscountType indica si un descuento es porcentual o un monto fijo.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFlat    DiscountType = "flat"
)

// AmountBasis indica si los precios unitarios vienen sin impuestos (HT) o con impuestos (TTC).
type AmountBasis string

const (
	BasisHT  AmountBasis = "HT"
	BasisTTC AmountBasis = "TTC"
)

// TaxOperation indica cómo se combinan varias tasas.
//   - cumul: cada tasa se aplica sobre la misma base.
//   - sequence: cada tasa se aplica sobre la base ya gravada por las anteriores (cascada).
type TaxOperation string

const (
	OperationCumul    TaxOperation = "cumul"
	OperationSequence TaxOperation = "sequence"
)

// TaxRate tasa definida por la empresa. Rate en porcentaje (18 = 18%).
type TaxRate struct {
	Name string
	Rate decimal.Decimal
}

// LineItem línea de un documento: alquiler de panel, producto o servicio.
type LineItem struct {
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	HasTax       bool
	Discount     decimal.Decimal
	DiscountType DiscountType // vacío solo si Discount es cero
}

// OrderDiscount descuento aplicado una sola vez sobre el total TTC.
type OrderDiscount struct {
	Amount decimal.Decimal
	Type   DiscountType
}

// Input agrupa todo lo que necesita Calculate. Las tasas se pasan en cada llamada.
type Input struct {
	Items         []LineItem
	TaxRates      []TaxRate
	AmountBasis   AmountBasis
	TaxOperation  TaxOperation // vacío = cumul
	OrderDiscount *OrderDiscount
}

// TaxAmount monto de impuesto atribuible a una tasa.
type TaxAmount struct {
	TaxName  string
	TotalTax decimal.Decimal
}

// Result totales con precisión completa; el redondeo es responsabilidad del llamador.
type Result struct {
	TotalWithoutTaxes   decimal.Decimal
	TotalWithTaxes      decimal.Decimal
	Taxes               []TaxAmount // una entrada por tasa, en el orden de entrada
	TotalTax            decimal.Decimal
	OrderDiscountAmount decimal.Decimal
}

// Round devuelve una copia con todos los montos redondeados a places decimales.
func (r Result) Round(places int32) Result {
	out := Result{
		TotalWithoutTaxes:   r.TotalWithoutTaxes.Round(places),
		TotalWithTaxes:      r.TotalWithTaxes.Round(places),
		TotalTax:            r.TotalTax.Round(places),
		OrderDiscountAmount: r.OrderDiscountAmount.Round(places),
		Taxes:               make([]TaxAmount, len(r.Taxes)),
	}
	for i, t := range r.Taxes {
		out.Taxes[i] = TaxAmount{TaxName: t.TaxName, TotalTax: t.TotalTax.Round(places)}
	}
	return out
}
