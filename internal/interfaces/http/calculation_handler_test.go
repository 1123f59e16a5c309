package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panneaux-api/internal/application/billing"
	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Panneaux-api/internal/interfaces/http"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type stubCompanies struct {
	company *entity.Company
	modules map[string]bool
}

func (s *stubCompanies) Create(context.Context, *entity.Company) error { return nil }
func (s *stubCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if s.company != nil && s.company.ID == id {
		return s.company, nil
	}
	return nil, nil
}
func (s *stubCompanies) GetByTaxID(context.Context, string) (*entity.Company, error) { return nil, nil }
func (s *stubCompanies) Update(context.Context, *entity.Company) error                { return nil }
func (s *stubCompanies) List(context.Context, int, int) ([]*entity.Company, error)    { return nil, nil }
func (s *stubCompanies) HasActiveModule(_ context.Context, _ string, module string) (bool, error) {
	return s.modules[module], nil
}

type stubRates []*entity.TaxRate

func (s stubRates) ListByCompany(context.Context, string) ([]*entity.TaxRate, error) { return s, nil }

// buildAPI monta el router completo con una empresa cumul/HT y una TVA del 18 %.
func buildAPI(modules map[string]bool) *fiber.App {
	companies := &stubCompanies{
		company: &entity.Company{
			ID: testCompanyID, Name: "Régie Dakar", Currency: "XOF",
			TaxOperation: "cumul", DefaultAmountBasis: "HT", Status: "active",
		},
		modules: modules,
	}
	rates := stubRates{{ID: "r1", CompanyID: testCompanyID, Name: "TVA", Rate: decimal.NewFromInt(18)}}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CalculateUC: billing.NewCalculateUseCase(companies, rates, nil, nil),
		Modules:     companies,
		JWTSecret:   testJWTSecret,
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, role string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ── POST /api/calculations ────────────────────────────────────────────────────

func TestCalculate_DevuelveTotalesConTasasDeLaEmpresa(t *testing.T) {
	app := buildAPI(nil)

	resp := postJSON(t, app, "/api/calculations?rounded=true", "commercial", dto.CalculationRequest{
		Items: []dto.LineItemRequest{
			{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(500), HasTax: true},
		},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.CalculationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.Equal(t, "HT", out.AmountBasis, "sin amount_basis se usa el de la empresa")
	assert.Equal(t, "cumul", out.TaxOperation)
	assert.True(t, out.Totals.TotalWithoutTaxes.Equal(decimal.NewFromInt(1000)), out.Totals.TotalWithoutTaxes.String())
	assert.True(t, out.Totals.TotalTax.Equal(decimal.NewFromInt(180)), out.Totals.TotalTax.String())
	assert.True(t, out.Totals.TotalWithTaxes.Equal(decimal.NewFromInt(1180)), out.Totals.TotalWithTaxes.String())
	require.Len(t, out.Totals.Taxes, 1)
	assert.Equal(t, "TVA", out.Totals.Taxes[0].TaxName)
	require.NotNil(t, out.Rounded, "rounded=true debe incluir la copia redondeada")
}

func TestCalculate_SinRounded_NoIncluyeCopiaRedondeada(t *testing.T) {
	app := buildAPI(nil)

	resp := postJSON(t, app, "/api/calculations", "admin", dto.CalculationRequest{})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.CalculationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Nil(t, out.Rounded)
	assert.True(t, out.Totals.TotalWithTaxes.IsZero())
}

func TestCalculate_EntradaInvalida_422ConCampo(t *testing.T) {
	app := buildAPI(nil)

	resp := postJSON(t, app, "/api/calculations", "comptable", dto.CalculationRequest{
		Items: []dto.LineItemRequest{
			{Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "items[0].quantity", body.Field)
}

func TestCalculate_DescuentoPorcentualMayorA100_422(t *testing.T) {
	app := buildAPI(nil)

	resp := postJSON(t, app, "/api/calculations", "comptable", dto.CalculationRequest{
		OrderDiscount: &dto.OrderDiscountRequest{Amount: decimal.NewFromInt(150), Type: "percent"},
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "order_discount.amount", body.Field)
}

func TestCalculate_CampoReportadoConClaveJSON(t *testing.T) {
	app := buildAPI(nil)

	resp := postJSON(t, app, "/api/calculations", "comptable", dto.CalculationRequest{
		Items: []dto.LineItemRequest{
			{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
			{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-5)},
		},
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "items[1].unit_price", body.Field)
}

func TestCalculate_SinToken_401(t *testing.T) {
	app := buildAPI(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/calculations", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCalculate_CuerpoInvalido_400(t *testing.T) {
	app := buildAPI(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/calculations", bytes.NewReader([]byte(`{"items":`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ── Módulos ───────────────────────────────────────────────────────────────────

func TestDocuments_ModuloBillingInactivo_403(t *testing.T) {
	app := buildAPI(map[string]bool{entity.ModuleBillboards: true})

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MODULE_DISABLED", body.Code)
}

func TestTaxRates_CommercialNoPuedeCrear_403(t *testing.T) {
	app := buildAPI(nil)

	resp := postJSON(t, app, "/api/tax-rates", "commercial", dto.CreateTaxRateRequest{Name: "TVA", Rate: decimal.NewFromInt(18)})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
