package repository

import (
	"context"

	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
)

// TaxRateRepository puerto de persistencia de las tasas de una empresa.
// ListByCompany devuelve las tasas ordenadas por position y fecha de creación.
type TaxRateRepository interface {
	Create(ctx context.Context, rate *entity.TaxRate) error
	GetByID(ctx context.Context, id string) (*entity.TaxRate, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.TaxRate, error)
	Delete(ctx context.Context, id string) error
}
