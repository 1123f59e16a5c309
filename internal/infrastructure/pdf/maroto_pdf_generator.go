// Package pdf genera la representación PDF de facturas, devis y bons de livraison.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón social + NINEA  │  Tipo + N° + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                            │
//	│  CLIENTE                                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qté | Désignation | P.U. | Remise | Taxe            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: HT / una línea por tasa / Remise / TTC            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appbilling "github.com/jhoicas/Panneaux-api/internal/application/billing"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appbilling.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
// Los montos se formatean según lang (separadores de miles y decimales).
type MarotoPDFGenerator struct {
	lang language.Tag
}

// NewMarotoPDFGenerator construye el generador con formato francés.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{lang: language.French}
}

// WithLanguage cambia el idioma de formateo de montos.
func (g *MarotoPDFGenerator) WithLanguage(tag language.Tag) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{lang: tag}
}

// GenerateDocumentPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(
	_ context.Context,
	doc *entity.Document,
	company *entity.Company,
	items []*entity.DocumentItem,
	taxes []*entity.DocumentTax,
) ([]byte, error) {
	title := documentTitle(doc.Type)
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title+" "+doc.Number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)
	money := g.formatter(doc.Currency)

	m.AddRows(headerRow(title, doc, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(issuerRow(company))
	m.AddRows(clientRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(doc.AmountBasis))
	m.AddRows(tableItemRows(items, money)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(doc, taxes, money)...)

	if doc.Notes != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New(doc.Notes, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, doc *entity.Document, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NINEA : "+nonEmpty(company.TaxID, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(title), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date : "+doc.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func issuerRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ÉMETTEUR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Adresse : %s   |   Tél : %s   |   Email : %s",
				nonEmpty(company.Address, "-"),
				nonEmpty(company.Phone, "-"),
				nonEmpty(company.Email, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func clientRow(doc *entity.Document) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
		),
	)
}

func tableHeaderRow(basis string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qté", 1, align.Center),
		h("Désignation", 5, align.Left),
		h("P.U. "+basis, 3, align.Right),
		h("Remise", 2, align.Right),
		h("Taxe", 1, align.Center),
	)
}

func tableItemRows(items []*entity.DocumentItem, money func(decimal.Decimal) string) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		taxed := "Non"
		if it.HasTax {
			taxed = "Oui"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(nonEmpty(it.Description, "-"), props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(discountLabel(it.Discount, it.DiscountType, money), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(taxed, props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

func totalsRows(doc *entity.Document, taxes []*entity.DocumentTax, money func(decimal.Decimal) string) []core.Row {
	total := func(label, value string, grand bool) core.Row {
		size := 9.0
		color := (*props.Color)(nil)
		if grand {
			size = 10
			color = colorPrimary
		}
		return row.New(6).Add(
			col.New(5),
			col.New(4).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2, Color: color,
			})),
			col.New(3).Add(text.New(value, props.Text{
				Size: size, Align: align.Right, Right: 1, Color: color,
			})),
		)
	}

	rows := []core.Row{total("Total HT :", money(doc.TotalWithoutTaxes), false)}
	for _, t := range taxes {
		rows = append(rows, total(fmt.Sprintf("%s (%s %%) :", t.TaxName, t.Rate.String()), money(t.Amount), false))
	}
	if doc.OrderDiscountAmount.IsPositive() {
		rows = append(rows, total("Remise globale :", "-"+money(doc.OrderDiscountAmount), false))
	}
	rows = append(rows, total("Total TTC :", money(doc.TotalWithTaxes), true))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func documentTitle(docType string) string {
	switch docType {
	case entity.DocumentQuote:
		return "Devis"
	case entity.DocumentDeliveryNote:
		return "Bon de livraison"
	default:
		return "Facture"
	}
}

func discountLabel(d decimal.Decimal, kind string, money func(decimal.Decimal) string) string {
	if d.IsZero() {
		return "-"
	}
	if kind == "percent" {
		return d.String() + " %"
	}
	return money(d)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatter devuelve una función que redondea a los decimales de la moneda
// (0 para XOF, 2 para EUR) y agrupa los miles según el idioma del generador.
func (g *MarotoPDFGenerator) formatter(cur string) func(decimal.Decimal) string {
	p := message.NewPrinter(g.lang)
	scale := 2
	if unit, err := currency.ParseISO(cur); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}
	return func(d decimal.Decimal) string {
		v := d.Round(int32(scale)).InexactFloat64()
		s := p.Sprint(number.Decimal(v, number.Scale(scale)))
		// helvetica no incluye los espacios finos del CLDR.
		s = strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(s)
		if cur != "" {
			s += " " + cur
		}
		return s
	}
}
