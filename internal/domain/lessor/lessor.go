// Package lessor modela al arrendador (bailleur) de un emplazamiento publicitario.
//
// Un arrendador es exactamente una de tres variantes, cada una con su propio
// conjunto de campos obligatorios:
//
//	private_physical  persona natural propietaria del terreno o muro
//	private_moral     persona jurídica (sociedad, asociación)
//	public            entidad pública (municipio, ministerio)
package lessor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind discrimina la variante.
type Kind string

const (
	KindPrivatePhysical Kind = "private_physical"
	KindPrivateMoral    Kind = "private_moral"
	KindPublic          Kind = "public"
)

// ErrInvalidLessor error base de validación.
var ErrInvalidLessor = errors.New("arrendador inválido")

// Lessor es la unión etiquetada; solo las variantes de este paquete la implementan.
type Lessor interface {
	Kind() Kind
	DisplayName() string
	Validate() error
	sealed()
}

// PrivatePhysical persona natural.
type PrivatePhysical struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IDNumber  string `json:"id_number"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// PrivateMoral persona jurídica.
type PrivateMoral struct {
	CompanyName    string `json:"company_name"`
	LegalForm      string `json:"legal_form"`
	RCCM           string `json:"rccm"`           // registro de comercio
	TaxID          string `json:"tax_id"`         // NINEA / NIF
	Representative string `json:"representative"` // firmante del contrato
	Phone          string `json:"phone,omitempty"`
}

// Public entidad pública.
type Public struct {
	Institution string `json:"institution"`
	Department  string `json:"department,omitempty"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone,omitempty"`
}

func (PrivatePhysical) Kind() Kind { return KindPrivatePhysical }
func (PrivateMoral) Kind() Kind    { return KindPrivateMoral }
func (Public) Kind() Kind          { return KindPublic }

func (PrivatePhysical) sealed() {}
func (PrivateMoral) sealed()    {}
func (Public) sealed()          {}

func (l PrivatePhysical) DisplayName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}
func (l PrivateMoral) DisplayName() string { return l.CompanyName }
func (l Public) DisplayName() string {
	if l.Department != "" {
		return l.Institution + " - " + l.Department
	}
	return l.Institution
}

func (l PrivatePhysical) Validate() error {
	return required(map[string]string{
		"first_name": l.FirstName,
		"last_name":  l.LastName,
		"id_number":  l.IDNumber,
	})
}

func (l PrivateMoral) Validate() error {
	return required(map[string]string{
		"company_name":   l.CompanyName,
		"legal_form":     l.LegalForm,
		"rccm":           l.RCCM,
		"tax_id":         l.TaxID,
		"representative": l.Representative,
	})
}

func (l Public) Validate() error {
	return required(map[string]string{
		"institution":  l.Institution,
		"contact_name": l.ContactName,
	})
}

// required lista los campos vacíos en orden alfabético.
func required(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: campos requeridos: %s", ErrInvalidLessor, strings.Join(missing, ", "))
}

// envelope forma JSON: {"type": "...", "data": {...}}.
type envelope struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Marshal serializa cualquier variante en su sobre etiquetado.
func Marshal(l Lessor) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidLessor)
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: l.Kind(), Data: data})
}

// Unmarshal decodifica el sobre y valida la variante resultante.
func Unmarshal(raw []byte) (Lessor, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLessor, err)
	}
	return Decode(env.Type, env.Data)
}

// Decode construye la variante indicada por kind a partir de su payload.
func Decode(kind Kind, data []byte) (Lessor, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: data requerido", ErrInvalidLessor)
	}
	var l Lessor
	switch kind {
	case KindPrivatePhysical:
		var v PrivatePhysical
		if err := strictUnmarshal(data, &v); err != nil {
			return nil, err
		}
		l = v
	case KindPrivateMoral:
		var v PrivateMoral
		if err := strictUnmarshal(data, &v); err != nil {
			return nil, err
		}
		l = v
	case KindPublic:
		var v Public
		if err := strictUnmarshal(data, &v); err != nil {
			return nil, err
		}
		l = v
	default:
		return nil, fmt.Errorf("%w: tipo desconocido %q", ErrInvalidLessor, kind)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// strictUnmarshal rechaza campos de otra variante (p. ej. rccm en una persona natural).
func strictUnmarshal(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLessor, err)
	}
	return nil
}
