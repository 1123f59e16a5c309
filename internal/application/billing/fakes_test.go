package billing

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
)

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (f *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}
func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.companies[id], nil
}
func (f *fakeCompanyRepo) GetByTaxID(context.Context, string) (*entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}
func (f *fakeCompanyRepo) List(context.Context, int, int) ([]*entity.Company, error) { return nil, nil }
func (f *fakeCompanyRepo) HasActiveModule(context.Context, string, string) (bool, error) {
	return true, nil
}

type fakeRates struct {
	byCompany map[string][]*entity.TaxRate
	err       error
}

func (f *fakeRates) ListByCompany(_ context.Context, companyID string) ([]*entity.TaxRate, error) {
	return f.byCompany[companyID], f.err
}

type recordingObserver struct {
	outcomes []string
}

func (r *recordingObserver) ObserveCalculation(outcome string, _ time.Duration) {
	r.outcomes = append(r.outcomes, outcome)
}

// memDocRepo guarda documentos en memoria; failOnTax simula un fallo a mitad de transacción.
type memDocRepo struct {
	mu        sync.Mutex
	docs      map[string]*entity.Document
	items     map[string][]*entity.DocumentItem
	taxes     map[string][]*entity.DocumentTax
	failOnTax bool
}

func newMemDocRepo() *memDocRepo {
	return &memDocRepo{
		docs:  map[string]*entity.Document{},
		items: map[string][]*entity.DocumentItem{},
		taxes: map[string][]*entity.DocumentTax{},
	}
}

func (m *memDocRepo) NextSequence(_ context.Context, companyID, docType, prefix string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var last int64
	for _, d := range m.docs {
		if d.CompanyID != companyID || d.Type != docType || !strings.HasPrefix(d.Number, prefix) {
			continue
		}
		if n, err := strconv.ParseInt(strings.TrimPrefix(d.Number, prefix), 10, 64); err == nil && n > last {
			last = n
		}
	}
	return last + 1, nil
}

func (m *memDocRepo) Create(_ context.Context, d *entity.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.docs {
		if existing.CompanyID == d.CompanyID && existing.Type == d.Type && existing.Number == d.Number {
			return domain.ErrDuplicate
		}
	}
	m.docs[d.ID] = d
	return nil
}
func (m *memDocRepo) CreateItem(_ context.Context, it *entity.DocumentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[it.DocumentID] = append(m.items[it.DocumentID], it)
	return nil
}
func (m *memDocRepo) CreateTax(_ context.Context, t *entity.DocumentTax) error {
	if m.failOnTax {
		return errors.New("disco lleno")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taxes[t.DocumentID] = append(m.taxes[t.DocumentID], t)
	return nil
}
func (m *memDocRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	return m.docs[id], nil
}
func (m *memDocRepo) GetItems(_ context.Context, id string) ([]*entity.DocumentItem, error) {
	return m.items[id], nil
}
func (m *memDocRepo) GetTaxes(_ context.Context, id string) ([]*entity.DocumentTax, error) {
	return m.taxes[id], nil
}
func (m *memDocRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Document, int, error) {
	var out []*entity.Document
	for _, d := range m.docs {
		if d.CompanyID == f.CompanyID && (f.Type == "" || d.Type == f.Type) {
			out = append(out, d)
		}
	}
	return out, len(out), nil
}

// memTxRunner aplica los cambios sobre target solo si fn termina sin error.
type memTxRunner struct {
	target *memDocRepo
}

func (r *memTxRunner) RunDocument(ctx context.Context, fn func(repository.DocumentRepository) error) error {
	staged := newMemDocRepo()
	staged.failOnTax = r.target.failOnTax
	for k, v := range r.target.docs {
		staged.docs[k] = v
	}
	if err := fn(staged); err != nil {
		return err
	}
	for k, v := range staged.docs {
		r.target.docs[k] = v
	}
	for k, v := range staged.items {
		r.target.items[k] = v
	}
	for k, v := range staged.taxes {
		r.target.taxes[k] = v
	}
	return nil
}
