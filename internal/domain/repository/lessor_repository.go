package repository

import (
	"context"

	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
)

// LessorRepository puerto de persistencia de arrendadores.
type LessorRepository interface {
	Create(ctx context.Context, l *entity.Lessor) error
	GetByID(ctx context.Context, id string) (*entity.Lessor, error)
	ListByCompany(ctx context.Context, companyID, lessorType string, limit, offset int) ([]*entity.Lessor, error)
	Delete(ctx context.Context, id string) error
}
