package validator_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panneaux-api/pkg/validator"
)

type item struct {
	Quantity decimal.Decimal `json:"quantity" validate:"gte=0"`
}

type request struct {
	Name  string `json:"name" validate:"required,max=10"`
	Kind  string `json:"kind" validate:"omitempty,oneof=a b"`
	Items []item `json:"items" validate:"required,min=1,dive"`
}

func TestStruct_Valido(t *testing.T) {
	err := validator.Struct(request{Name: "TVA", Items: []item{{Quantity: decimal.NewFromInt(2)}}})
	assert.NoError(t, err)
}

func TestStruct_ReportaCamposConNombreJSON(t *testing.T) {
	err := validator.Struct(request{
		Kind:  "z",
		Items: []item{{Quantity: decimal.NewFromInt(-1)}},
	})
	require.Error(t, err)

	var vErr *validator.Error
	require.True(t, errors.As(err, &vErr))

	fields := map[string]string{}
	for _, f := range vErr.Fields {
		fields[f.Field] = f.Rule
	}
	assert.Equal(t, "required", fields["name"])
	assert.Equal(t, "oneof", fields["kind"])
	assert.Equal(t, "gte", fields["items[0].quantity"])
}
