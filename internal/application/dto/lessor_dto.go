package dto

import (
	"encoding/json"
	"time"
)

// CreateLessorRequest body para POST /api/lessors: {"type": "...", "data": {...}}.
type CreateLessorRequest struct {
	Type string          `json:"type" validate:"required,oneof=private_physical private_moral public"`
	Data json.RawMessage `json:"data" validate:"required"`
}

// LessorResponse arrendador en respuestas.
type LessorResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	DisplayName string          `json:"display_name"`
	Data        json.RawMessage `json:"data"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LessorListResponse lista paginada de arrendadores.
type LessorListResponse struct {
	Items []LessorResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
