package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestField(t *testing.T) {
	cases := map[string]string{
		"items[0].quantity":     "items[0].quantity",
		"items[12].unitPrice":   "items[12].unit_price",
		"items[3].discountType": "items[3].discount_type",
		"orderDiscount.amount":  "order_discount.amount",
		"taxRates[1].rate":      "tax_rates[1].rate",
		"amountBasis":           "amount_basis",
		"taxOperation":          "tax_operation",
	}
	for in, want := range cases {
		assert.Equal(t, want, RequestField(in), in)
	}
}
