package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
)

var _ repository.TaxRateRepository = (*TaxRateRepo)(nil)

// TaxRateRepo tasas de impuesto por empresa.
type TaxRateRepo struct {
	q Querier
}

// NewTaxRateRepository construye el repositorio de tasas.
func NewTaxRateRepository(q Querier) *TaxRateRepo {
	return &TaxRateRepo{q: q}
}

// Create inserta una tasa. Un nombre repetido en la misma empresa devuelve domain.ErrDuplicate.
func (r *TaxRateRepo) Create(ctx context.Context, rate *entity.TaxRate) error {
	const query = `
		INSERT INTO tax_rates (id, company_id, name, rate, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		rate.ID, rate.CompanyID, rate.Name, rate.Rate, rate.Position, rate.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tax rate: %w", err)
	}
	return nil
}

// GetByID obtiene una tasa por ID.
func (r *TaxRateRepo) GetByID(ctx context.Context, id string) (*entity.TaxRate, error) {
	const query = `
		SELECT id, company_id, name, rate, position, created_at
		FROM tax_rates WHERE id = $1`
	var t entity.TaxRate
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.Rate, &t.Position, &t.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax rate: %w", err)
	}
	return &t, nil
}

// ListByCompany devuelve las tasas en orden de aplicación (position, created_at).
func (r *TaxRateRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.TaxRate, error) {
	const query = `
		SELECT id, company_id, name, rate, position, created_at
		FROM tax_rates
		WHERE company_id = $1
		ORDER BY position ASC, created_at ASC`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list tax rates: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.TaxRate, 0)
	for rows.Next() {
		var t entity.TaxRate
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Rate, &t.Position, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tax rate: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Delete elimina una tasa.
func (r *TaxRateRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM tax_rates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tax rate: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
