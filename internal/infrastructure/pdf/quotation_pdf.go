// Package pdf renders quotations and customer lists with Maroto v2.
//
// Quotation layout (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  LETTERHEAD: company, tagline, address, GSTIN + contact     │
//	│                       QUOTATION                             │
//	│  To: customer block          │  Quotation No + Date         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: S.No | Description | HSN | Qty | Amount (INR)       │
//	│  TOTALS: Sub-Total / CGST @ 9% / SGST @ 9% / Net Amount     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Bank details                │  Terms and conditions        │
//	│                          For COMPANY / Proprietor           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/ledger"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 41, Blue: 59}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implements the document ports with Maroto v2.
type MarotoPDFGenerator struct{}

var (
	_ ports.QuotationPDFGenerator    = (*MarotoPDFGenerator)(nil)
	_ ports.CustomerListPDFGenerator = (*MarotoPDFGenerator)(nil)
)

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(14).WithRightMargin(14).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

// GenerateQuotationPDF renders the quotation and returns the document bytes.
func (g *MarotoPDFGenerator) GenerateQuotationPDF(
	_ context.Context,
	company ports.CompanyProfile,
	customer *entity.Customer,
	quotation *entity.Quotation,
) ([]byte, error) {
	m := newDocument("Quotation "+quotation.QuotationNumber, company.Name)

	m.AddRows(letterheadRow(company))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(titleRow("QUOTATION"))
	m.AddRows(addresseeRow(customer, quotation))
	m.AddRows(line.NewRow(4))

	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(quotation.LineItems)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(ledger.ComputeTotals(quotation.LineItems), quotation.NetAmount))

	m.AddRows(line.NewRow(8))
	m.AddRows(remittanceRow(company))
	m.AddRows(line.NewRow(12))
	m.AddRows(signatureRow(company))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate quotation: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

func letterheadRow(c ports.CompanyProfile) core.Row {
	return row.New(26).Add(
		col.New(12).Add(
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New(c.Tagline, props.Text{Size: 9, Top: 8}),
			text.New(c.Address, props.Text{Size: 8, Top: 13, Color: colorGray}),
			text.New(fmt.Sprintf("GSTIN: %s | CONTACT: %s", c.GSTIN, c.Contact), props.Text{Size: 8, Top: 18, Color: colorGray}),
		),
	)
}

func titleRow(title string) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 16, Align: align.Center, Top: 3}),
	))
}

func addresseeRow(c *entity.Customer, q *entity.Quotation) core.Row {
	return row.New(24).Add(
		col.New(7).Add(
			text.New("To:", props.Text{Size: 10, Top: 1}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(c.Location, props.Text{Size: 10, Top: 11}),
			text.New("Phone: "+c.Phone, props.Text{Size: 10, Top: 16}),
		),
		col.New(5).Add(
			text.New("Quotation No: "+q.QuotationNumber, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1}),
			text.New("Date: "+q.Date.Format("02/01/2006"), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6}),
		),
	)
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("S.No", 1, align.Center),
		h("Description", 6, align.Left),
		h("HSN", 2, align.Center),
		h("Qty", 1, align.Center),
		h("Amount (INR)", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(items []entity.QuotationLineItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 9, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.Description, props.Text{Size: 9, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.HSN, props.Text{Size: 9, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 9, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(FormatAmount(it.Amount), props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// totalsRow prints the stored net amount, which is settled once a quotation is accepted.
func totalsRow(t ledger.Totals, net decimal.Decimal) core.Row {
	label := func(s string, top float64, bold bool) core.Component {
		p := props.Text{Size: 10, Align: align.Right, Right: 2, Top: top}
		if bold {
			p.Style = fontstyle.Bold
		}
		return text.New(s, p)
	}
	return row.New(30).Add(
		col.New(6),
		col.New(3).Add(
			label("Sub-Total:", 1, false),
			label("CGST @ 9%:", 8, false),
			label("SGST @ 9%:", 15, false),
			label("Net Amount:", 22, true),
		),
		col.New(3).Add(
			label(FormatAmount(t.SubTotal), 1, false),
			label(FormatAmount(t.CGST), 8, false),
			label(FormatAmount(t.SGST), 15, false),
			label(FormatCurrency(net), 22, true),
		),
	)
}

func remittanceRow(c ports.CompanyProfile) core.Row {
	bank := []core.Component{
		text.New("Our Bank Details", props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
		text.New("Bank Name: "+c.BankName, props.Text{Size: 9, Top: 7}),
		text.New("Account Name: "+c.AccountName, props.Text{Size: 9, Top: 12}),
		text.New("Account Number: "+c.AccountNumber, props.Text{Size: 9, Top: 17}),
		text.New("IFSC Code: "+c.IFSC, props.Text{Size: 9, Top: 22}),
	}
	terms := []core.Component{
		text.New("Terms And Conditions", props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
	}
	for i, t := range c.Terms {
		terms = append(terms, text.New(fmt.Sprintf("%d. %s", i+1, t), props.Text{Size: 9, Top: float64(7 + 5*i)}))
	}
	return row.New(30).Add(col.New(6).Add(bank...), col.New(6).Add(terms...))
}

func signatureRow(c ports.CompanyProfile) core.Row {
	return row.New(20).Add(col.New(12).Add(
		text.New("For "+c.Name, props.Text{Size: 9, Align: align.Right, Top: 1}),
		text.New("Proprietor", props.Text{Size: 9, Align: align.Right, Top: 14}),
	))
}
