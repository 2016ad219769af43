// Package pdf implementa la generación de los reportes imprimibles del
// almacén (solicitudes y propuestas aprobadas por rango de fechas).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Rango de fechas             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Unidad | Código | Artículo | Cant [| Total] │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de registros [+ total monetario]            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateRequestReportPDF genera el PDF de solicitudes aprobadas en el rango.
func (g *MarotoReportGenerator) GenerateRequestReportPDF(
	_ context.Context,
	rows []dto.RequestResponse,
	from, to time.Time,
) ([]byte, error) {
	m := newReport("Reporte de Solicitudes Aprobadas", from, to)

	m.AddRows(requestTableHeaderRow())
	var total int64
	for _, r := range rows {
		m.AddRows(requestDetailRow(r))
		total += r.Quantity
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(
		fmt.Sprintf("Registros: %d", len(rows)),
		fmt.Sprintf("Unidades entregadas: %d", total),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateProposalReportPDF genera el PDF de propuestas aprobadas en el rango.
func (g *MarotoReportGenerator) GenerateProposalReportPDF(
	_ context.Context,
	rows []dto.ProposalResponse,
	from, to time.Time,
) ([]byte, error) {
	m := newReport("Reporte de Propuestas Aprobadas", from, to)

	m.AddRows(proposalTableHeaderRow())
	grandTotal := decimal.Zero
	for _, p := range rows {
		m.AddRows(proposalDetailRow(p))
		grandTotal = grandTotal.Add(p.Total)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(
		fmt.Sprintf("Registros: %d", len(rows)),
		"Total: "+grandTotal.StringFixed(2),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// newReport construye el documento con el header común (título + rango).
func newReport(title string, from, to time.Time) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	rango := from.Format("02/01/2006") + " — " + to.Format("02/01/2006")
	m.AddRows(row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Periodo", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(rango, props.Text{Size: 9, Align: align.Right, Top: 7, Color: colorGray}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	return m
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func requestTableHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Fecha", 2, align.Left),
		headerCell("Unidad", 2, align.Left),
		headerCell("Código", 1, align.Center),
		headerCell("Artículo", 5, align.Left),
		headerCell("Cant.", 2, align.Right),
	)
}

func requestDetailRow(r dto.RequestResponse) core.Row {
	return row.New(7).Add(
		cell(r.RequestDate.Format("02/01/2006"), 2, align.Left),
		cell(r.ActorName, 2, align.Left),
		cell(r.ItemCode, 1, align.Center),
		cell(r.ItemName, 5, align.Left),
		cell(fmt.Sprintf("%d", r.Quantity), 2, align.Right),
	)
}

func proposalTableHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Fecha", 2, align.Left),
		headerCell("Código", 1, align.Center),
		headerCell("Artículo", 4, align.Left),
		headerCell("Cant.", 1, align.Right),
		headerCell("P.Unit.", 2, align.Right),
		headerCell("Total", 2, align.Right),
	)
}

func proposalDetailRow(p dto.ProposalResponse) core.Row {
	return row.New(7).Add(
		cell(p.ProposalDate.Format("02/01/2006"), 2, align.Left),
		cell(p.ItemCode, 1, align.Center),
		cell(p.ItemName, 4, align.Left),
		cell(fmt.Sprintf("%d", p.Quantity), 1, align.Right),
		cell(p.UnitPrice.StringFixed(2), 2, align.Right),
		cell(p.Total.StringFixed(2), 2, align.Right),
	)
}

// summaryRow: bloque de totales alineado a la derecha.
func summaryRow(left, right string) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New(left, props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2,
		})),
		col.New(6).Add(text.New(right, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2,
		})),
	)
}
