package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
	"github.com/jhoicas/Panneaux-api/internal/domain/taxcalc"
	"github.com/jhoicas/Panneaux-api/pkg/logger"
)

// CalculateUseCase calcula totales con las tasas y la configuración fiscal de la empresa.
// Las tasas se cargan en cada llamada y se pasan explícitamente al calculador.
type CalculateUseCase struct {
	companyRepo repository.CompanyRepository
	rates       TaxRateProvider
	observer    CalculationObserver
	log         *logger.Logger
}

// NewCalculateUseCase construye el caso de uso. observer y log pueden ser nil.
func NewCalculateUseCase(
	companyRepo repository.CompanyRepository,
	rates TaxRateProvider,
	observer CalculationObserver,
	log *logger.Logger,
) *CalculateUseCase {
	if observer == nil {
		observer = noopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CalculateUseCase{
		companyRepo: companyRepo,
		rates:       rates,
		observer:    observer,
		log:         log.WithComponent("billing.calculate"),
	}
}

// calcRun resultado intermedio compartido con DocumentUseCase.
type calcRun struct {
	company *entity.Company
	rates   []*entity.TaxRate
	input   taxcalc.Input
	result  taxcalc.Result
}

// Calculate calcula los totales de req para la empresa.
// places >= 0 agrega una copia redondeada a places decimales en la respuesta.
//
// Retorna:
//   - domain.ErrNotFound si la empresa no existe.
//   - *taxcalc.ValidationError (errors.Is ErrInvalidInput) ante entradas mal formadas.
func (uc *CalculateUseCase) Calculate(ctx context.Context, companyID string, req dto.CalculationRequest, places int32) (*dto.CalculationResponse, error) {
	run, err := uc.run(ctx, companyID, req.Items, req.AmountBasis, req.TaxOperation, req.OrderDiscount)
	if err != nil {
		return nil, err
	}
	resp := &dto.CalculationResponse{
		AmountBasis:  string(run.input.AmountBasis),
		TaxOperation: string(run.input.TaxOperation),
		Currency:     run.company.Currency,
		Totals:       ToTotals(run.result),
	}
	if places >= 0 {
		rounded := ToTotals(run.result.Round(places))
		resp.Rounded = &rounded
	}
	return resp, nil
}

func (uc *CalculateUseCase) run(
	ctx context.Context,
	companyID string,
	items []dto.LineItemRequest,
	basis, operation string,
	discount *dto.OrderDiscountRequest,
) (*calcRun, error) {
	start := time.Now()

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		uc.observer.ObserveCalculation("error", time.Since(start))
		return nil, fmt.Errorf("calcular: obtener empresa: %w", err)
	}
	if company == nil {
		uc.observer.ObserveCalculation("not_found", time.Since(start))
		return nil, domain.ErrNotFound
	}

	rates, err := uc.rates.ListByCompany(ctx, companyID)
	if err != nil {
		uc.observer.ObserveCalculation("error", time.Since(start))
		return nil, fmt.Errorf("calcular: obtener tasas: %w", err)
	}

	in := taxcalc.Input{
		Items:         ToCalcItems(items),
		TaxRates:      ToCalcRates(rates),
		AmountBasis:   taxcalc.AmountBasis(firstNonEmpty(basis, company.DefaultAmountBasis, string(taxcalc.BasisHT))),
		TaxOperation:  taxcalc.TaxOperation(firstNonEmpty(operation, company.TaxOperation, string(taxcalc.OperationCumul))),
		OrderDiscount: ToCalcDiscount(discount),
	}

	res, err := taxcalc.Calculate(in)
	if err != nil {
		if errors.Is(err, taxcalc.ErrInvalidInput) {
			uc.observer.ObserveCalculation("invalid", time.Since(start))
			uc.log.Debug().Err(err).Str("company_id", companyID).Msg("cálculo rechazado")
			return nil, err
		}
		uc.observer.ObserveCalculation("error", time.Since(start))
		return nil, err
	}

	uc.observer.ObserveCalculation("ok", time.Since(start))
	uc.log.Debug().
		Str("company_id", companyID).
		Int("items", len(in.Items)).
		Int("tax_rates", len(in.TaxRates)).
		Str("total_ttc", res.TotalWithTaxes.String()).
		Msg("cálculo realizado")

	return &calcRun{company: company, rates: rates, input: in, result: res}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
