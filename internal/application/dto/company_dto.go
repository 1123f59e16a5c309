package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name               string `json:"name" validate:"required,min=1,max=200"`
	TaxID              string `json:"tax_id" validate:"required,min=1,max=30"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	Email              string `json:"email" validate:"omitempty,email"`
	Currency           string `json:"currency" validate:"omitempty,len=3"`
	TaxOperation       string `json:"tax_operation" validate:"omitempty,oneof=cumul sequence"`
	DefaultAmountBasis string `json:"default_amount_basis" validate:"omitempty,oneof=HT TTC"`
}

// UpdateTaxSettingsRequest configuración fiscal de la empresa.
type UpdateTaxSettingsRequest struct {
	TaxOperation       string `json:"tax_operation" validate:"required,oneof=cumul sequence"`
	DefaultAmountBasis string `json:"default_amount_basis" validate:"required,oneof=HT TTC"`
	Currency           string `json:"currency" validate:"omitempty,len=3"`
}

// CompanyResponse salida de una empresa (sin datos sensibles).
type CompanyResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	TaxID              string    `json:"tax_id"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	Currency           string    `json:"currency"`
	TaxOperation       string    `json:"tax_operation"`
	DefaultAmountBasis string    `json:"default_amount_basis"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
