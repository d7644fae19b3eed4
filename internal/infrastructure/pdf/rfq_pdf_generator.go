// Package pdf genera la representación imprimible de un RFQ.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: RFQ-XXXXXX  │  Proveedor + Fecha límite            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Parte | Descripción | Fabricante | Cant | Precio    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL COTIZADO                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/sathler/bomlink/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// RFQGenerator genera el PDF de un RFQ usando Maroto v2.
type RFQGenerator struct{}

// NewRFQGenerator construye el generador.
func NewRFQGenerator() *RFQGenerator { return &RFQGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *RFQGenerator) Generate(r *entity.RFQ, items []*entity.RFQItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Solicitud de cotización "+r.RFQNumber(), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, it := range items {
		m.AddRows(itemRow(it))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(r *entity.RFQ) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(r.RFQNumber(), props.Text{Size: 16, Style: fontstyle.Bold, Color: colorPrimary}),
			text.New("Estado: "+r.Status, props.Text{Top: 8, Size: 9, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("Proveedor: "+r.SupplierName, props.Text{Size: 10, Align: align.Right}),
			text.New("Fecha límite: "+r.DueDate.Format("2006-01-02"), props.Text{Top: 5, Size: 9, Align: align.Right, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	bold := props.Text{Size: 9, Style: fontstyle.Bold}
	boldRight := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	return row.New(7).Add(
		text.NewCol(3, "Número de parte", bold),
		text.NewCol(3, "Descripción", bold),
		text.NewCol(2, "Fabricante", bold),
		text.NewCol(1, "Cant.", boldRight),
		text.NewCol(1, "UOM", bold),
		text.NewCol(1, "Precio", boldRight),
		text.NewCol(1, "Total", boldRight),
	)
}

func itemRow(it *entity.RFQItem) core.Row {
	plain := props.Text{Size: 8}
	right := props.Text{Size: 8, Align: align.Right}
	uom, price, total := "", "", ""
	if it.UOM != nil {
		uom = *it.UOM
	}
	if it.Price != nil {
		price = it.Price.StringFixed(2)
		total = it.LineTotal().StringFixed(2)
	}
	return row.New(6).Add(
		text.NewCol(3, it.PartNumber, plain),
		text.NewCol(3, it.PartDescription, plain),
		text.NewCol(2, it.ManufacturerName, plain),
		text.NewCol(1, fmt.Sprintf("%d", it.Quantity), right),
		text.NewCol(1, uom, plain),
		text.NewCol(1, price, right),
		text.NewCol(1, total, right),
	)
}

func totalRow(items []*entity.RFQItem) core.Row {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return row.New(10).Add(
		col.New(9),
		text.NewCol(3, "TOTAL COTIZADO: "+total.StringFixed(2),
			props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary}),
	)
}
