package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
	"github.com/jhoicas/Panneaux-api/pkg/logger"
)

// numberPrefixes prefijo del número generado cuando la petición no trae uno: FAC-2026-000001.
var numberPrefixes = map[string]string{
	entity.DocumentInvoice:      "FAC",
	entity.DocumentQuote:        "DEV",
	entity.DocumentDeliveryNote: "BL",
}

// DocumentUseCase crea y consulta facturas, devis y bons de livraison.
// Los totales se calculan con el mismo motor que POST /api/calculations y se guardan sin redondear.
type DocumentUseCase struct {
	calc     *CalculateUseCase
	txRunner DocumentTxRunner
	docRepo  repository.DocumentRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	calc *CalculateUseCase,
	txRunner DocumentTxRunner,
	docRepo repository.DocumentRepository,
	log *logger.Logger,
) *DocumentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentUseCase{
		calc:     calc,
		txRunner: txRunner,
		docRepo:  docRepo,
		log:      log.WithComponent("billing.documents"),
		now:      time.Now,
	}
}

// CreateDocument calcula los totales y guarda cabecera, líneas y montos por tasa en una sola transacción.
//
// Retorna:
//   - domain.ErrInvalidInput si la fecha no es YYYY-MM-DD.
//   - *taxcalc.ValidationError si el calculador rechaza la entrada.
//   - domain.ErrDuplicate si el número ya existe para la empresa y el tipo.
func (uc *DocumentUseCase) CreateDocument(ctx context.Context, companyID, userID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	now := uc.now().UTC()

	date := now.Truncate(24 * time.Hour)
	if in.Date != "" {
		d, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		date = d
	}

	run, err := uc.calc.run(ctx, companyID, in.Items, in.AmountBasis, in.TaxOperation, in.OrderDiscount)
	if err != nil {
		return nil, err
	}

	doc := &entity.Document{
		ID:                  uuid.New().String(),
		CompanyID:           companyID,
		UserID:              userID,
		Type:                in.Type,
		Number:              in.Number,
		ClientName:          in.ClientName,
		Date:                date,
		Currency:            run.company.Currency,
		AmountBasis:         string(run.input.AmountBasis),
		TaxOperation:        string(run.input.TaxOperation),
		DiscountAmount:      decimal.Zero,
		TotalWithoutTaxes:   run.result.TotalWithoutTaxes,
		TotalTax:            run.result.TotalTax,
		OrderDiscountAmount: run.result.OrderDiscountAmount,
		TotalWithTaxes:      run.result.TotalWithTaxes,
		Notes:               in.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if in.OrderDiscount != nil {
		doc.DiscountAmount = in.OrderDiscount.Amount
		doc.DiscountType = in.OrderDiscount.Type
	}

	items := lo.Map(in.Items, func(it dto.LineItemRequest, i int) *entity.DocumentItem {
		return &entity.DocumentItem{
			ID:           uuid.New().String(),
			DocumentID:   doc.ID,
			Position:     i,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			HasTax:       it.HasTax,
			Discount:     it.Discount,
			DiscountType: it.DiscountType,
		}
	})
	// result.Taxes sigue el orden de run.rates.
	taxes := make([]*entity.DocumentTax, len(run.result.Taxes))
	for i, t := range run.result.Taxes {
		taxes[i] = &entity.DocumentTax{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Position:   i,
			TaxName:    t.TaxName,
			Rate:       run.rates[i].Rate,
			Amount:     t.TotalTax,
		}
	}

	err = uc.txRunner.RunDocument(ctx, func(docRepo repository.DocumentRepository) error {
		if doc.Number == "" {
			prefix := fmt.Sprintf("%s-%d-", numberPrefixes[doc.Type], date.Year())
			seq, err := docRepo.NextSequence(ctx, companyID, doc.Type, prefix)
			if err != nil {
				return err
			}
			doc.Number = fmt.Sprintf("%s%06d", prefix, seq)
		}
		if err := docRepo.Create(ctx, doc); err != nil {
			return err
		}
		for _, it := range items {
			if err := docRepo.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		for _, t := range taxes {
			if err := docRepo.CreateTax(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("document_id", doc.ID).
		Str("type", doc.Type).
		Str("number", doc.Number).
		Msg("documento creado")

	return toDocumentResponse(doc, items, taxes), nil
}

// GetDocument devuelve el documento con líneas e impuestos.
func (uc *DocumentUseCase) GetDocument(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	doc, items, taxes, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, items, taxes), nil
}

// ListDocuments lista documentos de la empresa; docType vacío no filtra.
func (uc *DocumentUseCase) ListDocuments(ctx context.Context, companyID, docType string, page dto.PageRequest) (*dto.DocumentListResponse, error) {
	page = page.Normalized()
	if docType != "" {
		if _, ok := numberPrefixes[docType]; !ok {
			return nil, fmt.Errorf("%w: type desconocido %q", domain.ErrInvalidInput, docType)
		}
	}
	docs, total, err := uc.docRepo.List(ctx, repository.DocumentFilter{
		CompanyID: companyID,
		Type:      docType,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.DocumentListResponse{
		Items: lo.Map(docs, func(d *entity.Document, _ int) dto.DocumentResponse {
			return *toDocumentResponse(d, nil, nil)
		}),
		Page: page.Response(total),
	}, nil
}

// load recupera el documento completo verificando que pertenezca a la empresa.
func (uc *DocumentUseCase) load(ctx context.Context, companyID, id string) (*entity.Document, []*entity.DocumentItem, []*entity.DocumentTax, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, nil, nil, domain.ErrForbidden
	}
	items, err := uc.docRepo.GetItems(ctx, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("obtener líneas: %w", err)
	}
	taxes, err := uc.docRepo.GetTaxes(ctx, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("obtener impuestos: %w", err)
	}
	return doc, items, taxes, nil
}

func toDocumentResponse(d *entity.Document, items []*entity.DocumentItem, taxes []*entity.DocumentTax) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:                  d.ID,
		CompanyID:           d.CompanyID,
		Type:                d.Type,
		Number:              d.Number,
		ClientName:          d.ClientName,
		Date:                d.Date.Format("2006-01-02"),
		Currency:            d.Currency,
		AmountBasis:         d.AmountBasis,
		TaxOperation:        d.TaxOperation,
		DiscountAmount:      d.DiscountAmount,
		DiscountType:        d.DiscountType,
		TotalWithoutTaxes:   d.TotalWithoutTaxes,
		TotalTax:            d.TotalTax,
		OrderDiscountAmount: d.OrderDiscountAmount,
		TotalWithTaxes:      d.TotalWithTaxes,
		Notes:               d.Notes,
		Items: lo.Map(items, func(it *entity.DocumentItem, _ int) dto.DocumentItemResponse {
			return dto.DocumentItemResponse{
				ID:           it.ID,
				Description:  it.Description,
				Quantity:     it.Quantity,
				UnitPrice:    it.UnitPrice,
				HasTax:       it.HasTax,
				Discount:     it.Discount,
				DiscountType: it.DiscountType,
			}
		}),
		Taxes: lo.Map(taxes, func(t *entity.DocumentTax, _ int) dto.DocumentTaxResponse {
			return dto.DocumentTaxResponse{TaxName: t.TaxName, Rate: t.Rate, Amount: t.Amount}
		}),
	}
}
