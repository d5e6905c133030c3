// Package pdf genera el reporte de existencias del inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Clínica + título     │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: insumos / stock bajo / alerta / unidades / valor   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Insumo | Cant. | Mín. | Estado | Costo u.   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Inventario-dental-api/internal/application/report"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
)

var _ report.StockReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLow     = &props.Color{Red: 190, Green: 30, Blue: 45}
	colorWarning = &props.Color{Red: 200, Green: 120, Blue: 0}
	colorOK      = &props.Color{Red: 30, Green: 130, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.StockReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los números usan separadores en español (1.234,50).
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReport(ctx context.Context, r report.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		WithAuthor(nonEmpty(r.ClinicName, "Inventario dental"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(r.Stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for i, s := range r.Supplies {
		// Ctx cancelado: no seguir armando filas de un catálogo grande
		if i%100 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		m.AddRows(g.supplyRow(s))
	}
	if len(r.Supplies) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay insumos registrados.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r report.StockReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(r.ClinicName, "Inventario dental"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de existencias de insumos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) summaryRow(st repository.SupplyStats) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: c, Top: 5}),
		)
	}
	return row.New(14).Add(
		cell("Insumos", g.printer.Sprintf("%d", st.TotalSupplies), colorPrimary),
		cell("Stock bajo", g.printer.Sprintf("%d", st.LowStockCount), colorLow),
		cell("En alerta", g.printer.Sprintf("%d", st.WarningCount), colorWarning),
		cell("Unidades", g.printer.Sprintf("%d", st.TotalUnits), colorPrimary),
		col.New(4).Add(
			text.New("Valor del inventario", props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New("$"+g.money(st.InventoryValue), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorPrimary, Top: 5,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Insumo", 4, align.Left),
		h("Cant.", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Estado", 2, align.Center),
		h("Costo u.", 2, align.Right),
	)
}

func (g *MarotoPDFGenerator) supplyRow(s *entity.Supply) core.Row {
	status := s.StockStatus()
	return row.New(7).Add(
		col.New(2).Add(text.New(s.Code, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(s.Name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(g.printer.Sprintf("%d", s.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(g.printer.Sprintf("%d", s.MinStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(statusLabel(status), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColor(status),
		})),
		col.New(2).Add(text.New("$"+g.money(s.UnitCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con dos decimales y separadores locales. Ej: 1234567.5 → "1.234.567,50".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func statusLabel(status string) string {
	switch status {
	case entity.StockStatusLow:
		return "BAJO"
	case entity.StockStatusWarning:
		return "ALERTA"
	default:
		return "OK"
	}
}

func statusColor(status string) *props.Color {
	switch status {
	case entity.StockStatusLow:
		return colorLow
	case entity.StockStatusWarning:
		return colorWarning
	default:
		return colorOK
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
