package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
)

// TaxRateProvider entrega las tasas de una empresa en orden de aplicación.
// La implementa el repositorio PostgreSQL o la caché Redis que lo envuelve.
type TaxRateProvider interface {
	ListByCompany(ctx context.Context, companyID string) ([]*entity.TaxRate, error)
}

// CalculationObserver recibe el resultado de cada cálculo (métricas).
// outcome: "ok", "invalid", "not_found" o "error".
type CalculationObserver interface {
	ObserveCalculation(outcome string, elapsed time.Duration)
}

// DocumentTxRunner ejecuta fn dentro de una transacción con el repositorio de documentos atado a ella.
type DocumentTxRunner interface {
	RunDocument(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error
}

// DocumentPDFGenerator genera la representación PDF de un documento.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(
		ctx context.Context,
		doc *entity.Document,
		company *entity.Company,
		items []*entity.DocumentItem,
		taxes []*entity.DocumentTax,
	) ([]byte, error)
}

type noopObserver struct{}

func (noopObserver) ObserveCalculation(string, time.Duration) {}
