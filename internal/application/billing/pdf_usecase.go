package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
)

// PDFUseCase genera la representación PDF de un documento guardado.
type PDFUseCase struct {
	docs        *DocumentUseCase
	companyRepo repository.CompanyRepository
	generator   DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(docs *DocumentUseCase, companyRepo repository.CompanyRepository, generator DocumentPDFGenerator) *PDFUseCase {
	return &PDFUseCase{docs: docs, companyRepo: companyRepo, generator: generator}
}

// DownloadDocumentPDF recupera el documento con sus líneas e impuestos y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
//   - domain.ErrForbidden        si el documento no pertenece a la empresa del token.
func (uc *PDFUseCase) DownloadDocumentPDF(ctx context.Context, companyID, documentID string) (pdfBytes []byte, filename string, err error) {
	doc, items, taxes, err := uc.docs.load(ctx, companyID, documentID)
	if err != nil {
		return nil, "", err
	}

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err = uc.generator.GenerateDocumentPDF(ctx, doc, company, items, taxes)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}
	return pdfBytes, fmt.Sprintf("%s_%s.pdf", doc.Type, doc.Number), nil
}
