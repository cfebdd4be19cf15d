// Package pdf implementa el reporte imprimible del resumen de opname no
// posteado (lo que el líder de bodega revisa antes de enviar al ERP).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Resumen de Opname  │  Bodega + Fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Bodega | Cantidad | Unidad | %  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL de líneas + advertencias de conversión               │
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

	"github.com/jhoicas/opname-api/internal/application/dto"
	appopname "github.com/jhoicas/opname-api/internal/application/opname"
)

// Ensure MarotoPDFGenerator implements the port.
var _ appopname.SummaryPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarning = &props.Color{Red: 180, Green: 80, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa opname.SummaryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSummaryPDF genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSummaryPDF(
	_ context.Context,
	warehouseName string,
	generatedAt time.Time,
	rows []dto.UnpostedProductDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de Opname", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(warehouseName, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(rows))
	for _, r := range warningRows(rows) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y bodega + fecha (der).
func headerRow(warehouseName string, generatedAt time.Time) core.Row {
	if warehouseName == "" {
		warehouseName = "Todas las bodegas"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("RESUMEN DE OPNAME", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Conteo físico pendiente de post al ERP", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(warehouseName, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Bodega", 2, align.Left),
		h("Cantidad", 2, align.Right),
		h("Unidad", 1, align.Center),
		h("%", 1, align.Right),
	)
}

// tableDetailRows: una fila por producto agregado.
func tableDetailRows(items []dto.UnpostedProductDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		uomName := it.TargetUom
		if uomName == "" {
			uomName = it.OriginalUom
		}
		nameColor := (*props.Color)(nil)
		if it.ConversionWarning != "" {
			nameColor = colorWarning
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.Key,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: nameColor},
			)),
			col.New(2).Add(text.New(
				it.WarehouseName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				uomName,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				it.SharePct.StringFixed(1),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: número de líneas del resumen.
func totalRow(items []dto.UnpostedProductDTO) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Total: %d producto(s)", len(items)),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1},
		)),
	)
}

// warningRows: advertencias de conversión indeterminada al pie del reporte.
func warningRows(items []dto.UnpostedProductDTO) []core.Row {
	var rows []core.Row
	for _, it := range items {
		if it.ConversionWarning == "" {
			continue
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Advertencia: "+it.Name+": "+it.ConversionWarning, props.Text{
				Size: 7, Color: colorWarning, Top: 1, Left: 1,
			}),
		)))
	}
	return rows
}
