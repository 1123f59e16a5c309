package repository

import (
	"context"

	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
)

// DocumentFilter filtros del listado de documentos.
type DocumentFilter struct {
	CompanyID string
	Type      string // vacío = todos
	Limit     int
	Offset    int
}

// DocumentRepository puerto de persistencia de documentos (cabecera, líneas, impuestos).
type DocumentRepository interface {
	// NextSequence devuelve el siguiente correlativo de los números "<prefix><n>" de la empresa y el tipo.
	// Dentro de una transacción serializa a los llamadores concurrentes hasta el commit.
	NextSequence(ctx context.Context, companyID, docType, prefix string) (int64, error)
	Create(ctx context.Context, doc *entity.Document) error
	CreateItem(ctx context.Context, item *entity.DocumentItem) error
	CreateTax(ctx context.Context, tax *entity.DocumentTax) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	GetItems(ctx context.Context, documentID string) ([]*entity.DocumentItem, error)
	GetTaxes(ctx context.Context, documentID string) ([]*entity.DocumentTax, error)
	List(ctx context.Context, f DocumentFilter) ([]*entity.Document, int, error)
}
