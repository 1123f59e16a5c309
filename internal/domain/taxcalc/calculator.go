package taxcalc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// divisionScale dígitos decimales usados al extraer el impuesto de un monto TTC.
const divisionScale int32 = 16

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Calculate calcula el total HT, el total TTC y el desglose por tasa.
//
// Pasos:
//  1. Línea = cantidad * precio unitario, menos el descuento propio de la línea.
//  2. En base TTC las líneas gravadas se dividen por el multiplicador efectivo
//     (1 + Σtasas en cumul, Π(1 + tasa) en sequence).
//  3. Se aplican las tasas sobre la suma de líneas gravadas.
//  4. El descuento global se aplica una vez sobre el total TTC, nunca por debajo de cero.
//
// Devuelve *ValidationError (envolviendo ErrInvalidInput) ante entradas mal formadas.
func Calculate(in Input) (Result, error) {
	op, err := validate(in)
	if err != nil {
		return Result{}, err
	}

	multiplier := effectiveMultiplier(in.TaxRates, op)

	totalWithout := decimal.Zero
	taxableBase := decimal.Zero
	for _, item := range in.Items {
		line := discountedLine(item)
		if item.HasTax {
			if in.AmountBasis == BasisTTC {
				line = line.DivRound(multiplier, divisionScale)
			}
			taxableBase = taxableBase.Add(line)
		}
		totalWithout = totalWithout.Add(line)
	}

	taxes, totalTax := applyRates(taxableBase, in.TaxRates, op)

	totalWith := totalWithout.Add(totalTax)
	discounted := applyOrderDiscount(totalWith, in.OrderDiscount)

	return Result{
		TotalWithoutTaxes:   totalWithout,
		TotalWithTaxes:      discounted,
		Taxes:               taxes,
		TotalTax:            totalTax,
		OrderDiscountAmount: totalWith.Sub(discounted),
	}, nil
}

// discountedLine aplica el descuento de la línea. Un descuento fijo mayor que la línea deja 0.
func discountedLine(item LineItem) decimal.Decimal {
	line := item.Quantity.Mul(item.UnitPrice)
	if item.Discount.IsZero() {
		return line
	}
	switch item.DiscountType {
	case DiscountPercent:
		line = line.Mul(one.Sub(percent(item.Discount)))
	case DiscountFlat:
		line = line.Sub(item.Discount)
	}
	if line.IsNegative() {
		return decimal.Zero
	}
	return line
}

// effectiveMultiplier factor que convierte un monto HT en TTC para el conjunto de tasas.
func effectiveMultiplier(rates []TaxRate, op TaxOperation) decimal.Decimal {
	m := one
	if op == OperationSequence {
		for _, r := range rates {
			m = m.Mul(one.Add(percent(r.Rate)))
		}
		return m
	}
	for _, r := range rates {
		m = m.Add(percent(r.Rate))
	}
	return m
}

func applyRates(base decimal.Decimal, rates []TaxRate, op TaxOperation) ([]TaxAmount, decimal.Decimal) {
	taxes := make([]TaxAmount, 0, len(rates))
	total := decimal.Zero
	running := base
	for _, r := range rates {
		var amount decimal.Decimal
		if op == OperationSequence {
			amount = percent(running.Mul(r.Rate))
			running = running.Add(amount)
		} else {
			amount = percent(base.Mul(r.Rate))
		}
		taxes = append(taxes, TaxAmount{TaxName: r.Name, TotalTax: amount})
		total = total.Add(amount)
	}
	return taxes, total
}

func applyOrderDiscount(total decimal.Decimal, d *OrderDiscount) decimal.Decimal {
	if d == nil || d.Amount.IsZero() {
		return total
	}
	var out decimal.Decimal
	switch d.Type {
	case DiscountPercent:
		out = total.Sub(percent(total.Mul(d.Amount)))
	default:
		out = total.Sub(d.Amount)
	}
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// percent divide entre 100 desplazando el exponente; el resultado es exacto.
func percent(x decimal.Decimal) decimal.Decimal {
	return x.Shift(-2)
}

// validate revisa la entrada completa y devuelve la operación efectiva.
func validate(in Input) (TaxOperation, error) {
	switch in.AmountBasis {
	case BasisHT, BasisTTC:
	default:
		return "", invalid("amountBasis", fmt.Sprintf("valor desconocido %q", in.AmountBasis))
	}

	op := in.TaxOperation
	switch op {
	case "":
		op = OperationCumul
	case OperationCumul, OperationSequence:
	default:
		return "", invalid("taxOperation", fmt.Sprintf("valor desconocido %q", in.TaxOperation))
	}

	for i, r := range in.TaxRates {
		if r.Rate.IsNegative() {
			return "", invalid(fmt.Sprintf("taxRates[%d].rate", i), "no puede ser negativa")
		}
	}

	for i, item := range in.Items {
		prefix := fmt.Sprintf("items[%d]", i)
		if item.Quantity.IsNegative() {
			return "", invalid(prefix+".quantity", "no puede ser negativa")
		}
		if item.UnitPrice.IsNegative() {
			return "", invalid(prefix+".unitPrice", "no puede ser negativo")
		}
		if err := validateDiscount(prefix+".discount", prefix+".discountType", item.Discount, item.DiscountType); err != nil {
			return "", err
		}
	}

	if d := in.OrderDiscount; d != nil {
		if err := validateDiscount("orderDiscount.amount", "orderDiscount.type", d.Amount, d.Type); err != nil {
			return "", err
		}
	}
	return op, nil
}

func validateDiscount(amountField, typeField string, amount decimal.Decimal, kind DiscountType) error {
	if amount.IsNegative() {
		return invalid(amountField, "no puede ser negativo")
	}
	switch kind {
	case DiscountPercent:
		if amount.GreaterThan(hundred) {
			return invalid(amountField, "un porcentaje no puede superar 100")
		}
	case DiscountFlat:
	case "":
		if !amount.IsZero() {
			return invalid(typeField, "requerido cuando hay descuento")
		}
	default:
		return invalid(typeField, fmt.Sprintf("valor desconocido %q", kind))
	}
	return nil
}
