package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panneaux-api/internal/interfaces/cli"
)

const devis = `{
  "items": [
    {"quantity": 2, "unit_price": 500, "has_tax": true},
    {"quantity": 1, "unit_price": 100, "has_tax": false}
  ],
  "tax_rates": [{"name": "TVA", "rate": 18}],
  "order_discount": {"amount": 80, "type": "flat"}
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCmd(nil, strings.NewReader(stdin), &out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// ── compute ───────────────────────────────────────────────────────────────────

func TestCompute_DesdeStdin_PorDefectoHTCumul(t *testing.T) {
	stdout, err := run(t, devis, "compute")
	require.NoError(t, err)

	var out cli.ComputeOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	assert.Equal(t, "HT", out.AmountBasis)
	assert.Equal(t, "cumul", out.TaxOperation)
	assert.True(t, out.Totals.TotalWithoutTaxes.Equal(decimal.NewFromInt(1100)), out.Totals.TotalWithoutTaxes.String())
	assert.True(t, out.Totals.TotalTax.Equal(decimal.NewFromInt(180)), out.Totals.TotalTax.String())
	assert.True(t, out.Totals.TotalWithTaxes.Equal(decimal.NewFromInt(1200)), out.Totals.TotalWithTaxes.String())
	assert.Nil(t, out.Rounded)
}

func TestCompute_DesdeArchivoConRedondeo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devis.json")
	require.NoError(t, os.WriteFile(path, []byte(devis), 0o600))

	stdout, err := run(t, "", "compute", "--file", path, "--round", "2", "--pretty")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\n  \"amount_basis\"", "--pretty indenta la salida")

	var out cli.ComputeOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.NotNil(t, out.Rounded)
	assert.True(t, out.Rounded.TotalWithTaxes.Equal(decimal.NewFromInt(1200)))
}

func TestCompute_FaltaDeCalculador_DevuelveErrFault(t *testing.T) {
	_, err := run(t, `{"items":[{"quantity":-1,"unit_price":10}]}`, "compute")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrFault)
	assert.Contains(t, err.Error(), "items[0].quantity")
}

func TestCompute_JSONInvalido(t *testing.T) {
	_, err := run(t, `{"items":`, "compute")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cli.ErrFault)
}

func TestCompute_ArchivoInexistente(t *testing.T) {
	_, err := run(t, "", "compute", "--file", filepath.Join(t.TempDir(), "nada.json"))
	assert.Error(t, err)
}

// ── version ───────────────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	stdout, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "taxcalc "+cli.Version+"\n", stdout)
}
