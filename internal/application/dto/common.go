package dto

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageRequest ventana limit/offset de un listado.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalized devuelve la página con Limit en [1,100] (20 si falta) y Offset >= 0.
func (p PageRequest) Normalized() PageRequest {
	switch {
	case p.Limit <= 0:
		p.Limit = defaultPageSize
	case p.Limit > maxPageSize:
		p.Limit = maxPageSize
	}
	p.Offset = max(p.Offset, 0)
	return p
}

// Response metadatos de la página servida; total 0 se omite.
func (p PageRequest) Response(total int) PageResponse {
	return PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Field identifica el campo rechazado por el calculador.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Field   string       `json:"field,omitempty"`
	Fields  []FieldIssue `json:"fields,omitempty"`
}

// FieldIssue campo rechazado por la validación de la petición.
type FieldIssue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}
