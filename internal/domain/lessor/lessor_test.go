package lessor_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panneaux-api/internal/domain/lessor"
)

func TestUnmarshal_PersonaNatural(t *testing.T) {
	raw := []byte(`{"type":"private_physical","data":{"first_name":"Awa","last_name":"Diop","id_number":"1234567890123"}}`)

	l, err := lessor.Unmarshal(raw)
	require.NoError(t, err)

	p, ok := l.(lessor.PrivatePhysical)
	require.True(t, ok, "debe decodificar la variante persona natural")
	assert.Equal(t, "Awa Diop", p.DisplayName())
	assert.Equal(t, lessor.KindPrivatePhysical, l.Kind())
}

func TestUnmarshal_PersonaJuridicaIncompleta(t *testing.T) {
	raw := []byte(`{"type":"private_moral","data":{"company_name":"Sotrac SA","legal_form":"SA"}}`)

	_, err := lessor.Unmarshal(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lessor.ErrInvalidLessor))
	assert.Contains(t, err.Error(), "rccm, representative, tax_id")
}

func TestUnmarshal_CamposDeOtraVarianteRechazados(t *testing.T) {
	raw := []byte(`{"type":"public","data":{"institution":"Mairie de Dakar","contact_name":"M. Ba","rccm":"SN-DKR-1"}}`)

	_, err := lessor.Unmarshal(raw)
	assert.ErrorIs(t, err, lessor.ErrInvalidLessor)
}

func TestUnmarshal_TipoDesconocido(t *testing.T) {
	_, err := lessor.Unmarshal([]byte(`{"type":"cooperative","data":{}}`))
	assert.ErrorIs(t, err, lessor.ErrInvalidLessor)
}

func TestUnmarshal_SinData(t *testing.T) {
	_, err := lessor.Unmarshal([]byte(`{"type":"public"}`))
	assert.ErrorIs(t, err, lessor.ErrInvalidLessor)
}

func TestMarshal_IdaYVuelta(t *testing.T) {
	orig := lessor.Public{Institution: "Ministère des Transports", Department: "DGR", ContactName: "Mme Sarr"}

	raw, err := lessor.Marshal(orig)
	require.NoError(t, err)

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.JSONEq(t, `"public"`, string(env["type"]))

	back, err := lessor.Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, orig, back)
	assert.Equal(t, "Ministère des Transports - DGR", back.DisplayName())
}

func TestMarshal_Nil(t *testing.T) {
	_, err := lessor.Marshal(nil)
	assert.ErrorIs(t, err, lessor.ErrInvalidLessor)
}
