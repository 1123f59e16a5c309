package postgres

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo persistencia de facturas, devis y bons de livraison.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el repositorio (pool o tx).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, company_id, user_id, type, number, client_name, date, currency,
	amount_basis, tax_operation, discount_amount, discount_type,
	total_without_taxes, total_tax, order_discount_amount, total_with_taxes,
	notes, created_at, updated_at`

// NextSequence toma un lock transaccional por empresa y tipo y devuelve MAX(n)+1 sobre los números
// "<prefix><n>". Fuera de una transacción el lock se libera al terminar la sentencia.
func (r *DocumentRepo) NextSequence(ctx context.Context, companyID, docType, prefix string) (int64, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1 || ':' || $2))`, companyID, docType); err != nil {
		return 0, fmt.Errorf("lock document numbering: %w", err)
	}
	query := `
		SELECT COALESCE(MAX(CAST(substr(number, $3) AS BIGINT)), 0) + 1
		FROM documents
		WHERE company_id = $1 AND type = $2 AND number ~ $4`
	var next int64
	pattern := "^" + regexp.QuoteMeta(prefix) + "[0-9]{1,18}$"
	if err := r.q.QueryRow(ctx, query, companyID, docType, len(prefix)+1, pattern).Scan(&next); err != nil {
		return 0, fmt.Errorf("next document number: %w", err)
	}
	return next, nil
}

// Create inserta la cabecera. Un número repetido para la empresa y tipo devuelve domain.ErrDuplicate.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.CompanyID, nullIfEmpty(d.UserID), d.Type, d.Number, d.ClientName, d.Date, d.Currency,
		d.AmountBasis, d.TaxOperation, d.DiscountAmount, nullIfEmpty(d.DiscountType),
		d.TotalWithoutTaxes, d.TotalTax, d.OrderDiscountAmount, d.TotalWithTaxes,
		d.Notes, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// CreateItem inserta una línea.
func (r *DocumentRepo) CreateItem(ctx context.Context, it *entity.DocumentItem) error {
	const query = `
		INSERT INTO document_items (id, document_id, position, description, quantity, unit_price, has_tax, discount, discount_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.DocumentID, it.Position, it.Description, it.Quantity, it.UnitPrice,
		it.HasTax, it.Discount, nullIfEmpty(it.DiscountType),
	)
	if err != nil {
		return fmt.Errorf("insert document item: %w", err)
	}
	return nil
}

// CreateTax inserta el monto de una tasa.
func (r *DocumentRepo) CreateTax(ctx context.Context, t *entity.DocumentTax) error {
	const query = `
		INSERT INTO document_taxes (id, document_id, position, tax_name, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, t.ID, t.DocumentID, t.Position, t.TaxName, t.Rate, t.Amount)
	if err != nil {
		return fmt.Errorf("insert document tax: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera; (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	d, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// GetItems líneas en su orden original.
func (r *DocumentRepo) GetItems(ctx context.Context, documentID string) ([]*entity.DocumentItem, error) {
	const query = `
		SELECT id, document_id, position, description, quantity, unit_price, has_tax, discount, COALESCE(discount_type, '')
		FROM document_items WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()

	var list []*entity.DocumentItem
	for rows.Next() {
		var it entity.DocumentItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.Position, &it.Description, &it.Quantity,
			&it.UnitPrice, &it.HasTax, &it.Discount, &it.DiscountType); err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetTaxes montos por tasa en orden de aplicación.
func (r *DocumentRepo) GetTaxes(ctx context.Context, documentID string) ([]*entity.DocumentTax, error) {
	const query = `
		SELECT id, document_id, position, tax_name, rate, amount
		FROM document_taxes WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document taxes: %w", err)
	}
	defer rows.Close()

	var list []*entity.DocumentTax
	for rows.Next() {
		var t entity.DocumentTax
		if err := rows.Scan(&t.ID, &t.DocumentID, &t.Position, &t.TaxName, &t.Rate, &t.Amount); err != nil {
			return nil, fmt.Errorf("scan document tax: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// List devuelve una página de documentos y el total que cumple el filtro.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, int, error) {
	const where = ` WHERE company_id = $1 AND ($2::text IS NULL OR type = $2)`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM documents`+where, f.CompanyID, nullIfEmpty(f.Type)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	query := `SELECT ` + documentColumns + ` FROM documents` + where +
		` ORDER BY date DESC, created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.CompanyID, nullIfEmpty(f.Type), f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

func scanDocument(row rowScanner) (*entity.Document, error) {
	var (
		d            entity.Document
		userID       *string
		discountType *string
	)
	err := row.Scan(
		&d.ID, &d.CompanyID, &userID, &d.Type, &d.Number, &d.ClientName, &d.Date, &d.Currency,
		&d.AmountBasis, &d.TaxOperation, &d.DiscountAmount, &discountType,
		&d.TotalWithoutTaxes, &d.TotalTax, &d.OrderDiscountAmount, &d.TotalWithTaxes,
		&d.Notes, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		d.UserID = *userID
	}
	if discountType != nil {
		d.DiscountType = *discountType
	}
	return &d, nil
}
