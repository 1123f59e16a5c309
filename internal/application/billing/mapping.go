package billing

import (
	"strings"

	"github.com/samber/lo"

	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/taxcalc"
)

// ToCalcItems convierte las líneas de la petición al modelo del calculador.
func ToCalcItems(items []dto.LineItemRequest) []taxcalc.LineItem {
	return lo.Map(items, func(it dto.LineItemRequest, _ int) taxcalc.LineItem {
		return taxcalc.LineItem{
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			HasTax:       it.HasTax,
			Discount:     it.Discount,
			DiscountType: taxcalc.DiscountType(it.DiscountType),
		}
	})
}

// ToCalcRates convierte las tasas persistidas, conservando su orden.
func ToCalcRates(rates []*entity.TaxRate) []taxcalc.TaxRate {
	return lo.Map(rates, func(r *entity.TaxRate, _ int) taxcalc.TaxRate {
		return taxcalc.TaxRate{Name: r.Name, Rate: r.Rate}
	})
}

// ToCalcDiscount convierte el descuento global; nil si no viene.
func ToCalcDiscount(d *dto.OrderDiscountRequest) *taxcalc.OrderDiscount {
	if d == nil {
		return nil
	}
	return &taxcalc.OrderDiscount{Amount: d.Amount, Type: taxcalc.DiscountType(d.Type)}
}

// ToTotals presenta un resultado del calculador.
func ToTotals(res taxcalc.Result) dto.CalculationTotals {
	return dto.CalculationTotals{
		TotalWithoutTaxes:   res.TotalWithoutTaxes,
		TotalTax:            res.TotalTax,
		OrderDiscountAmount: res.OrderDiscountAmount,
		TotalWithTaxes:      res.TotalWithTaxes,
		Taxes: lo.Map(res.Taxes, func(t taxcalc.TaxAmount, _ int) dto.TaxAmountResponse {
			return dto.TaxAmountResponse{TaxName: t.TaxName, TotalTax: t.TotalTax}
		}),
	}
}

// RequestField traduce la ruta de un campo del calculador (items[0].unitPrice) a la clave JSON
// de la petición (items[0].unit_price).
func RequestField(path string) string {
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		name, index, _ := strings.Cut(seg, "[")
		segments[i] = lo.SnakeCase(name)
		if index != "" {
			segments[i] += "[" + index
		}
	}
	return strings.Join(segments, ".")
}
