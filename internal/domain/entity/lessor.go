package entity

import (
	"encoding/json"
	"time"
)

// Lessor fila persistida de un arrendador. Payload contiene el JSON de la variante
// indicada por Type (ver paquete domain/lessor).
type Lessor struct {
	ID          string
	CompanyID   string
	Type        string
	DisplayName string
	Payload     json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
