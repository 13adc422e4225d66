// Package pdf genera el reporte de stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de corte                            │
//	│  RESUMEN: productos / críticos / movimientos                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Nombre | Categoría | Mín | Actual | Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ÚLTIMOS MOVIMIENTOS: Fecha | Tipo | Producto | Cant | Usr  │
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

	"github.com/jhoicas/gametech-stock/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// RecentMovements cantidad de movimientos que se listan al final del reporte.
const RecentMovements = 20

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator arma el reporte de stock con Maroto v2.
type StockReportGenerator struct {
	title string
}

// NewStockReportGenerator construye el generador; title va en el encabezado.
func NewStockReportGenerator(title string) *StockReportGenerator {
	return &StockReportGenerator{title: title}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) GenerateStockReport(_ context.Context, snap dto.SnapshotResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, snap))
	m.AddRows(summaryRow(snap))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(productHeaderRow())
	m.AddRows(productRows(snap.Products)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(movementRows(lastMovements(snap.Movements, RecentMovements))...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, snap dto.SnapshotResponse) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(4).Add(
			text.New("Corte: "+snap.TakenAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func summaryRow(snap dto.SnapshotResponse) core.Row {
	critical := 0
	for _, p := range snap.Products {
		if p.IsCritical {
			critical++
		}
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Productos: %d   |   En stock crítico: %d   |   Movimientos: %d",
			len(snap.Products), critical, len(snap.Movements),
		), props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func productHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 1, align.Left),
		h("Nombre", 4, align.Left),
		h("Categoría", 3, align.Left),
		h("Mín.", 1, align.Right),
		h("Actual", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

func productRows(products []dto.ProductResponse) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		status, color := "OK", colorGray
		if p.IsCritical {
			status, color = "CRÍTICO", colorCritical
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		rows = append(rows, row.New(6).Add(
			cell(p.Code, 1, align.Left),
			cell(p.Name, 4, align.Left),
			cell(p.Category, 3, align.Left),
			cell(formatUnits(p.MinimumStock), 1, align.Right),
			cell(formatUnits(p.CurrentStock), 1, align.Right),
			col.New(2).Add(text.New(status, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: color,
			})),
		))
	}
	return rows
}

func movementRows(movements []dto.MovementResponse) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("ÚLTIMOS MOVIMIENTOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	if len(movements) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin movimientos registrados.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	for _, m := range movements {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(m.Timestamp.Format("02/01/2006 15:04"), props.Text{Size: 7, Top: 1})),
			col.New(2).Add(text.New(m.Type, props.Text{Size: 7, Top: 1})),
			col.New(3).Add(text.New(m.ProductCode+" "+m.ProductName, props.Text{Size: 7, Top: 1})),
			col.New(1).Add(text.New(signed(m.Delta), props.Text{Size: 7, Top: 1, Align: align.Right})),
			col.New(3).Add(text.New(m.UserName, props.Text{Size: 7, Top: 1, Left: 2, Color: colorGray})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func lastMovements(movements []dto.MovementResponse, n int) []dto.MovementResponse {
	if len(movements) <= n {
		return movements
	}
	return movements[len(movements)-n:]
}

func signed(n int) string {
	if n > 0 {
		return "+" + formatUnits(n)
	}
	return formatUnits(n)
}

// formatUnits inserta puntos de miles. Ej: 25000 → "25.000", -1000000 → "-1.000.000"
func formatUnits(v int) string {
	s := strconv.Itoa(v)
	sign := ""
	if v < 0 {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
