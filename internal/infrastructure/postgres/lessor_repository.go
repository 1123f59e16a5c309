package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
)

var _ repository.LessorRepository = (*LessorRepo)(nil)

// LessorRepo arrendadores; el payload de la variante se guarda como jsonb.
type LessorRepo struct {
	q Querier
}

// NewLessorRepository construye el repositorio de arrendadores.
func NewLessorRepository(q Querier) *LessorRepo {
	return &LessorRepo{q: q}
}

// Create inserta un arrendador.
func (r *LessorRepo) Create(ctx context.Context, l *entity.Lessor) error {
	const query = `
		INSERT INTO lessors (id, company_id, type, display_name, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CompanyID, l.Type, l.DisplayName, []byte(l.Payload), l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lessor: %w", err)
	}
	return nil
}

// GetByID obtiene un arrendador.
func (r *LessorRepo) GetByID(ctx context.Context, id string) (*entity.Lessor, error) {
	const query = `
		SELECT id, company_id, type, display_name, payload, created_at, updated_at
		FROM lessors WHERE id = $1`
	var (
		l       entity.Lessor
		payload []byte
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.CompanyID, &l.Type, &l.DisplayName, &payload, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lessor: %w", err)
	}
	l.Payload = payload
	return &l, nil
}

// ListByCompany lista arrendadores; lessorType vacío no filtra.
func (r *LessorRepo) ListByCompany(ctx context.Context, companyID, lessorType string, limit, offset int) ([]*entity.Lessor, error) {
	const query = `
		SELECT id, company_id, type, display_name, payload, created_at, updated_at
		FROM lessors
		WHERE company_id = $1
		  AND ($2::text IS NULL OR type = $2)
		ORDER BY display_name ASC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, nullIfEmpty(lessorType), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lessors: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Lessor, 0)
	for rows.Next() {
		var (
			l       entity.Lessor
			payload []byte
		)
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.Type, &l.DisplayName, &payload, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lessor: %w", err)
		}
		l.Payload = payload
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete elimina un arrendador.
func (r *LessorRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM lessors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lessor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
