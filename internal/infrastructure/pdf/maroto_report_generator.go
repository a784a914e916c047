// Package pdf implementa la versión imprimible del reporte de inventario
// (agregados + productos en stock bajo) usando Maroto v2.
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

	"github.com/itmco/inventory-api/internal/application/dto"
	"github.com/itmco/inventory-api/internal/application/reports"
)

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateInventoryReport genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(report *dto.InventoryReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de stock bajo
	m.AddRows(tableHeaderRow())
	for _, p := range report.LowStock {
		m.AddRows(productRow(p))
	}
	if len(report.LowStock) == 0 {
		m.AddRows(row.New(8).Add(
			col.New(12).Add(text.New("Sin productos en stock bajo", props.Text{
				Size: 9, Color: colorGray, Align: align.Center, Top: 2,
			})),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow título + fecha de generación.
func headerRow(report *dto.InventoryReportResponse) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Inventario ITMCO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Color: colorGray, Top: 3,
			}),
		),
	)
}

// summaryRow totales del inventario y salidas de los últimos 30 días.
func summaryRow(report *dto.InventoryReportResponse) core.Row {
	cells := []struct {
		label string
		value string
	}{
		{"Productos", fmt.Sprintf("%d", report.TotalProducts)},
		{"Unidades", fmt.Sprintf("%d", report.TotalUnits)},
		{"Valor total", report.TotalValue.StringFixed(2)},
		{"Stock bajo", fmt.Sprintf("%d", report.LowStockCount)},
		{"Salidas 30d", fmt.Sprintf("%d (%d uds)", report.Issuances30d.Count, report.Issuances30d.Units)},
	}
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(2).Add(
			text.New(c.label, props.Text{Size: 8, Color: colorGray}),
			text.New(c.value, props.Text{Size: 11, Style: fontstyle.Bold, Top: 4}),
		))
	}
	return row.New(14).Add(cols...)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}
	return row.New(8).Add(
		col.New(4).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("Marca", header)),
		col.New(2).Add(text.New("Categoría", header)),
		col.New(2).Add(text.New("Stock", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1, Align: align.Right})),
		col.New(2).Add(text.New("Mínimo", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1, Align: align.Right})),
	)
}

func productRow(p dto.ProductResponse) core.Row {
	cell := props.Text{Size: 9, Top: 1}
	right := props.Text{Size: 9, Top: 1, Align: align.Right}
	return row.New(7).Add(
		col.New(4).Add(text.New(p.Name, cell)),
		col.New(2).Add(text.New(p.Brand, cell)),
		col.New(2).Add(text.New(p.Category, cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", p.Stock), right)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", p.MinStock), right)),
	)
}
