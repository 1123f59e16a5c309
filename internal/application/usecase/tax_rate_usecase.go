package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
	"github.com/jhoicas/Panneaux-api/pkg/logger"
)

// TaxRateReader fuente de lectura de tasas (normalmente la caché Redis sobre el repositorio).
type TaxRateReader interface {
	ListByCompany(ctx context.Context, companyID string) ([]*entity.TaxRate, error)
}

// TaxRateInvalidator descarta las tasas cacheadas de una empresa.
type TaxRateInvalidator interface {
	Invalidate(ctx context.Context, companyID string) error
}

// TaxRateUseCase gestiona las tasas de impuesto de la empresa.
// El orden del listado es el orden en que el calculador aplica las tasas.
type TaxRateUseCase struct {
	repo        repository.TaxRateRepository
	reader      TaxRateReader
	invalidator TaxRateInvalidator
	log         *logger.Logger
}

// NewTaxRateUseCase construye el caso de uso. reader e invalidator pueden ser nil
// (lectura directa del repositorio, sin caché).
func NewTaxRateUseCase(repo repository.TaxRateRepository, reader TaxRateReader, invalidator TaxRateInvalidator, log *logger.Logger) *TaxRateUseCase {
	if reader == nil {
		reader = repo
	}
	if log == nil {
		log = logger.Nop()
	}
	return &TaxRateUseCase{repo: repo, reader: reader, invalidator: invalidator, log: log.WithComponent("tax_rates")}
}

// Create registra una tasa. Devuelve domain.ErrDuplicate si el nombre ya existe en la empresa.
func (uc *TaxRateUseCase) Create(ctx context.Context, companyID string, in dto.CreateTaxRateRequest) (*dto.TaxRateResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
	}
	if in.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: rate no puede ser negativa", domain.ErrInvalidInput)
	}
	rate := &entity.TaxRate{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Rate:      in.Rate,
		Position:  in.Position,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, rate); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return toTaxRateResponse(rate), nil
}

// List devuelve las tasas de la empresa en orden de aplicación.
func (uc *TaxRateUseCase) List(ctx context.Context, companyID string) (*dto.TaxRateListResponse, error) {
	rates, err := uc.reader.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.TaxRateListResponse{
		Items: lo.Map(rates, func(r *entity.TaxRate, _ int) dto.TaxRateResponse {
			return *toTaxRateResponse(r)
		}),
	}, nil
}

// Delete elimina una tasa de la empresa.
func (uc *TaxRateUseCase) Delete(ctx context.Context, companyID, id string) error {
	rate, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rate == nil {
		return domain.ErrNotFound
	}
	if rate.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, companyID)
	return nil
}

func (uc *TaxRateUseCase) invalidate(ctx context.Context, companyID string) {
	if uc.invalidator == nil {
		return
	}
	if err := uc.invalidator.Invalidate(ctx, companyID); err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar la caché de tasas")
	}
}

func toTaxRateResponse(r *entity.TaxRate) *dto.TaxRateResponse {
	return &dto.TaxRateResponse{
		ID:        r.ID,
		Name:      r.Name,
		Rate:      r.Rate,
		Position:  r.Position,
		CreatedAt: r.CreatedAt,
	}
}
