package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/taxcalc"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newCalcFixture(operation, basis string) (*CalculateUseCase, *recordingObserver) {
	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{
		"c1": {ID: "c1", Currency: "XOF", TaxOperation: operation, DefaultAmountBasis: basis},
	}}
	rates := &fakeRates{byCompany: map[string][]*entity.TaxRate{
		"c1": {
			{Name: "TVA", Rate: d("10")},
			{Name: "TSP", Rate: d("5")},
		},
	}}
	obs := &recordingObserver{}
	return NewCalculateUseCase(companies, rates, obs, nil), obs
}

func oneItem(qty, price string) []dto.LineItemRequest {
	return []dto.LineItemRequest{{Quantity: d(qty), UnitPrice: d(price), HasTax: true}}
}

func TestCalculate_UsaConfiguracionDeLaEmpresa(t *testing.T) {
	uc, obs := newCalcFixture("sequence", "HT")

	resp, err := uc.Calculate(context.Background(), "c1", dto.CalculationRequest{Items: oneItem("1", "1000")}, -1)
	require.NoError(t, err)

	assert.Equal(t, "sequence", resp.TaxOperation)
	assert.Equal(t, "HT", resp.AmountBasis)
	assert.Equal(t, "XOF", resp.Currency)
	assert.True(t, resp.Totals.TotalWithTaxes.Equal(d("1155")), "got %s", resp.Totals.TotalWithTaxes)
	require.Len(t, resp.Totals.Taxes, 2)
	assert.Equal(t, "TVA", resp.Totals.Taxes[0].TaxName)
	assert.True(t, resp.Totals.Taxes[1].TotalTax.Equal(d("55")))
	assert.Nil(t, resp.Rounded)
	assert.Equal(t, []string{"ok"}, obs.outcomes)
}

func TestCalculate_LaPeticionSobreescribeConfiguracion(t *testing.T) {
	uc, _ := newCalcFixture("sequence", "HT")

	resp, err := uc.Calculate(context.Background(), "c1", dto.CalculationRequest{
		Items:        oneItem("1", "1150"),
		AmountBasis:  "TTC",
		TaxOperation: "cumul",
	}, 2)
	require.NoError(t, err)

	assert.Equal(t, "cumul", resp.TaxOperation)
	assert.Equal(t, "TTC", resp.AmountBasis)
	assert.Equal(t, "1000.00", resp.Rounded.TotalWithoutTaxes.StringFixed(2))
	assert.Equal(t, "1150.00", resp.Rounded.TotalWithTaxes.StringFixed(2))
}

func TestCalculate_EmpresaSinConfiguracionUsaCumulHT(t *testing.T) {
	uc, _ := newCalcFixture("", "")

	resp, err := uc.Calculate(context.Background(), "c1", dto.CalculationRequest{Items: oneItem("1", "1000")}, -1)
	require.NoError(t, err)
	assert.Equal(t, "cumul", resp.TaxOperation)
	assert.Equal(t, "HT", resp.AmountBasis)
	assert.True(t, resp.Totals.TotalWithTaxes.Equal(d("1150")))
}

func TestCalculate_Redondeo(t *testing.T) {
	uc, _ := newCalcFixture("cumul", "TTC")

	resp, err := uc.Calculate(context.Background(), "c1", dto.CalculationRequest{Items: oneItem("1", "100")}, 2)
	require.NoError(t, err)

	require.NotNil(t, resp.Rounded)
	assert.Equal(t, "86.96", resp.Rounded.TotalWithoutTaxes.StringFixed(2))
	assert.Equal(t, "100.00", resp.Rounded.TotalWithTaxes.StringFixed(2))
	assert.NotEqual(t, "86.96", resp.Totals.TotalWithoutTaxes.String(), "el total completo no se redondea")
}

func TestCalculate_EntradaInvalida(t *testing.T) {
	uc, obs := newCalcFixture("cumul", "HT")

	_, err := uc.Calculate(context.Background(), "c1", dto.CalculationRequest{Items: oneItem("-1", "10")}, -1)
	require.Error(t, err)

	var verr *taxcalc.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "items[0].quantity", verr.Field)
	assert.Equal(t, []string{"invalid"}, obs.outcomes)
}

func TestCalculate_EmpresaInexistente(t *testing.T) {
	uc, obs := newCalcFixture("cumul", "HT")

	_, err := uc.Calculate(context.Background(), "nope", dto.CalculationRequest{}, -1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"not_found"}, obs.outcomes)
}

func TestCalculate_ErrorAlCargarTasas(t *testing.T) {
	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{"c1": {ID: "c1"}}}
	obs := &recordingObserver{}
	uc := NewCalculateUseCase(companies, &fakeRates{err: errors.New("timeout")}, obs, nil)

	_, err := uc.Calculate(context.Background(), "c1", dto.CalculationRequest{}, -1)
	require.Error(t, err)
	assert.Equal(t, []string{"error"}, obs.outcomes)
}
