package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
	"github.com/jhoicas/Panneaux-api/internal/domain/taxcalc"
)

// DefaultCurrency moneda de una empresa creada sin moneda explícita.
const DefaultCurrency = "XOF"

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa con su configuración fiscal (cumul, HT, XOF por defecto).
// Devuelve domain.ErrDuplicate si el identificador fiscal ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	existing, _ := uc.repo.GetByTaxID(ctx, in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		TaxID:              in.TaxID,
		Address:            in.Address,
		Phone:              in.Phone,
		Email:              in.Email,
		Currency:           strings.ToUpper(lo.CoalesceOrEmpty(in.Currency, DefaultCurrency)),
		TaxOperation:       lo.CoalesceOrEmpty(in.TaxOperation, string(taxcalc.OperationCumul)),
		DefaultAmountBasis: lo.CoalesceOrEmpty(in.DefaultAmountBasis, string(taxcalc.BasisHT)),
		Status:             "active",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page = page.Normalized()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := lo.Map(list, func(c *entity.Company, _ int) dto.CompanyResponse {
		return *entityToCompanyResponse(c)
	})
	return &dto.CompanyListResponse{
		Items: items,
		Page:  page.Response(0),
	}, nil
}

// UpdateTaxSettings cambia el modo de combinación de tasas, la base por defecto y la moneda.
// Solo un usuario de la propia empresa puede cambiarla (domain.ErrForbidden en otro caso).
func (uc *CompanyUseCase) UpdateTaxSettings(ctx context.Context, actorCompanyID, companyID string, in dto.UpdateTaxSettingsRequest) (*dto.CompanyResponse, error) {
	if actorCompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	company.TaxOperation = in.TaxOperation
	company.DefaultAmountBasis = in.DefaultAmountBasis
	if in.Currency != "" {
		company.Currency = strings.ToUpper(in.Currency)
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		TaxID:              c.TaxID,
		Address:            c.Address,
		Phone:              c.Phone,
		Email:              c.Email,
		Currency:           c.Currency,
		TaxOperation:       c.TaxOperation,
		DefaultAmountBasis: c.DefaultAmountBasis,
		Status:             c.Status,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
