package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
)

func newDocFixture() (*DocumentUseCase, *memDocRepo) {
	calc, _ := newCalcFixture("cumul", "HT")
	repo := newMemDocRepo()
	uc := NewDocumentUseCase(calc, &memTxRunner{target: repo}, repo, nil)
	uc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	return uc, repo
}

func invoiceRequest() dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{
		Type:       entity.DocumentInvoice,
		ClientName: "Sonatel",
		Items: []dto.LineItemRequest{
			{Description: "Panneau 12m²", Quantity: d("2"), UnitPrice: d("500"), HasTax: true},
			{Description: "Frais de dossier", Quantity: d("1"), UnitPrice: d("100")},
		},
		OrderDiscount: &dto.OrderDiscountRequest{Amount: d("50"), Type: "flat"},
	}
}

func TestCreateDocument_GuardaTotalesLineasEImpuestos(t *testing.T) {
	uc, repo := newDocFixture()

	resp, err := uc.CreateDocument(context.Background(), "c1", "u1", invoiceRequest())
	require.NoError(t, err)

	assert.Equal(t, "FAC-2026-000001", resp.Number)
	assert.Equal(t, "2026-03-14", resp.Date)
	assert.Equal(t, "XOF", resp.Currency)
	assert.True(t, resp.TotalWithoutTaxes.Equal(d("1100")))
	assert.True(t, resp.TotalTax.Equal(d("150")))
	assert.True(t, resp.OrderDiscountAmount.Equal(d("50")))
	assert.True(t, resp.TotalWithTaxes.Equal(d("1200")))
	require.Len(t, resp.Taxes, 2)
	assert.True(t, resp.Taxes[0].Rate.Equal(d("10")))
	assert.True(t, resp.Taxes[0].Amount.Equal(d("100")))

	require.Len(t, repo.docs, 1)
	assert.Len(t, repo.items[resp.ID], 2)
	assert.Len(t, repo.taxes[resp.ID], 2)
	assert.Equal(t, "u1", repo.docs[resp.ID].UserID)
}

func TestCreateDocument_PrefijoPorTipo(t *testing.T) {
	uc, _ := newDocFixture()
	req := invoiceRequest()
	req.Type = entity.DocumentDeliveryNote

	resp, err := uc.CreateDocument(context.Background(), "c1", "u1", req)
	require.NoError(t, err)
	assert.Equal(t, "BL-2026-000001", resp.Number)
}

func TestCreateDocument_NumeracionCorrelativaEnElMismoInstante(t *testing.T) {
	uc, _ := newDocFixture()
	ctx := context.Background()

	first, err := uc.CreateDocument(ctx, "c1", "u1", invoiceRequest())
	require.NoError(t, err)
	second, err := uc.CreateDocument(ctx, "c1", "u1", invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "FAC-2026-000001", first.Number)
	assert.Equal(t, "FAC-2026-000002", second.Number)

	// Un número manual con el mismo formato adelanta la secuencia.
	manual := invoiceRequest()
	manual.Number = "FAC-2026-000010"
	_, err = uc.CreateDocument(ctx, "c1", "u1", manual)
	require.NoError(t, err)
	next, err := uc.CreateDocument(ctx, "c1", "u1", invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "FAC-2026-000011", next.Number)

	// Cada empresa y tipo lleva su propio correlativo.
	quote := invoiceRequest()
	quote.Type = entity.DocumentQuote
	q, err := uc.CreateDocument(ctx, "c1", "u1", quote)
	require.NoError(t, err)
	assert.Equal(t, "DEV-2026-000001", q.Number)
}

func TestCreateDocument_NumeroDuplicado(t *testing.T) {
	uc, _ := newDocFixture()
	req := invoiceRequest()
	req.Number = "F-001"

	_, err := uc.CreateDocument(context.Background(), "c1", "u1", req)
	require.NoError(t, err)
	_, err = uc.CreateDocument(context.Background(), "c1", "u1", req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateDocument_FalloEnTransaccionNoDejaNada(t *testing.T) {
	uc, repo := newDocFixture()
	repo.failOnTax = true

	_, err := uc.CreateDocument(context.Background(), "c1", "u1", invoiceRequest())
	require.Error(t, err)
	assert.Empty(t, repo.docs)
	assert.Empty(t, repo.items)
}

func TestCreateDocument_FechaInvalida(t *testing.T) {
	uc, _ := newDocFixture()
	req := invoiceRequest()
	req.Date = "14/03/2026"

	_, err := uc.CreateDocument(context.Background(), "c1", "u1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetDocument_OtraEmpresaProhibido(t *testing.T) {
	uc, _ := newDocFixture()
	resp, err := uc.CreateDocument(context.Background(), "c1", "u1", invoiceRequest())
	require.NoError(t, err)

	_, err = uc.GetDocument(context.Background(), "c2", resp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetDocument(context.Background(), "c1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.GetDocument(context.Background(), "c1", resp.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
}

func TestListDocuments_FiltraPorTipo(t *testing.T) {
	uc, _ := newDocFixture()
	inv := invoiceRequest()
	quote := invoiceRequest()
	quote.Type = entity.DocumentQuote
	_, err := uc.CreateDocument(context.Background(), "c1", "u1", inv)
	require.NoError(t, err)
	_, err = uc.CreateDocument(context.Background(), "c1", "u1", quote)
	require.NoError(t, err)

	list, err := uc.ListDocuments(context.Background(), "c1", entity.DocumentQuote, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, entity.DocumentQuote, list.Items[0].Type)
	assert.Equal(t, 20, list.Page.Limit)

	_, err = uc.ListDocuments(context.Background(), "c1", "receipt", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type stubPDF struct{ calls int }

func (s *stubPDF) GenerateDocumentPDF(_ context.Context, _ *entity.Document, _ *entity.Company, _ []*entity.DocumentItem, _ []*entity.DocumentTax) ([]byte, error) {
	s.calls++
	return []byte("%PDF-1.3"), nil
}

func TestDownloadDocumentPDF(t *testing.T) {
	uc, _ := newDocFixture()
	resp, err := uc.CreateDocument(context.Background(), "c1", "u1", invoiceRequest())
	require.NoError(t, err)

	gen := &stubPDF{}
	pdfUC := NewPDFUseCase(uc, uc.calc.companyRepo, gen)

	out, name, err := pdfUC.DownloadDocumentPDF(context.Background(), "c1", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(out))
	assert.Equal(t, "invoice_FAC-2026-000001.pdf", name)

	_, _, err = pdfUC.DownloadDocumentPDF(context.Background(), "c2", resp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 1, gen.calls)
}
