package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// GenerateCustomerListPDF renders a Name/Phone/Location/Stage/Business Type table.
func (g *MarotoPDFGenerator) GenerateCustomerListPDF(_ context.Context, title string, customers []*entity.Customer) ([]byte, error) {
	m := newDocument(title, title)

	m.AddRows(row.New(12).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2}),
	)))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d customers | generated %s", len(customers), time.Now().Format("02/01/2006")),
			props.Text{Size: 8, Color: colorGray}),
	)))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))

	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorWhite, Top: 2, Left: 1,
		}))
	}
	m.AddRows(row.New(8).Add(
		h("Name", 3), h("Phone", 2), h("Location", 2), h("Stage", 3), h("Business Type", 2),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary}))

	cell := func(v string, size int) core.Col {
		return col.New(size).Add(text.New(v, props.Text{Size: 8, Top: 1, Left: 1, Align: align.Left}))
	}
	for _, c := range customers {
		m.AddRows(row.New(7).Add(
			cell(c.Name, 3), cell(c.Phone, 2), cell(c.Location, 2), cell(c.Stage.Label(), 3), cell(string(c.BusinessType), 2),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate customer list: %w", err)
	}
	return doc.GetBytes(), nil
}
