package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
)

var knownModules = []string{entity.ModuleBilling, entity.ModuleBillboards, entity.ModuleTransactions}

// ModuleService decide qué módulos (billing, billboards, transactions) puede usar una empresa.
type ModuleService struct {
	companyRepo repository.CompanyRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companyRepo repository.CompanyRepository) *ModuleService {
	return &ModuleService{companyRepo: companyRepo}
}

// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
// Un módulo desconocido es domain.ErrInvalidInput; un módulo no contratado es false sin error.
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" {
		return false, fmt.Errorf("%w: company_id vacío", domain.ErrInvalidInput)
	}
	if !lo.Contains(knownModules, moduleName) {
		return false, fmt.Errorf("%w: módulo desconocido %q", domain.ErrInvalidInput, moduleName)
	}
	active, err := s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
	if err != nil {
		return false, fmt.Errorf("módulos: consultar %s: %w", moduleName, err)
	}
	return active, nil
}
