// Package pdf implementa la generación de la Hoja de Trazabilidad de un
// lote: el documento imprimible que acompaña al lote en auditorías e
// inspecciones.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Código del lote  │  Empresa + Instalación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FICHA: cultivar, fase, estado, cantidades, mortalidad       │
//	│  GENEALOGÍA: vínculos etiquetados de la familia              │
//	│  TABLA: traslados de área                                    │
//	│  TABLA: pérdidas registradas                                 │
//	│  COSECHA: peso, calidad, humedad (si aplica)                 │
//	│  FOOTER: QR con el código del lote                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/verdeflow/trazo-api/internal/application/trace"
	batchdomain "github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ trace.SheetGenerator = (*MarotoSheetGenerator)(nil)

// MarotoSheetGenerator implementa trace.SheetGenerator usando Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

// Generate genera el PDF de la hoja de trazabilidad y devuelve sus bytes.
func (g *MarotoSheetGenerator) Generate(data *trace.SheetData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de Trazabilidad "+data.Batch.BatchCode, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(batchSheetRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(data.Links) > 0 {
		m.AddRows(sectionTitle("GENEALOGÍA"))
		m.AddRows(lineageRows(data)...)
	}

	if len(data.Movements) > 0 {
		m.AddRows(sectionTitle("TRASLADOS DE ÁREA"))
		m.AddRows(movementRows(data.Movements)...)
	}

	if len(data.Losses) > 0 {
		m.AddRows(sectionTitle("PÉRDIDAS REGISTRADAS"))
		m.AddRows(lossRows(data.Losses)...)
	}

	if data.Harvest != nil {
		m.AddRows(sectionTitle("COSECHA"))
		m.AddRows(harvestRow(data.Harvest))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data.Batch))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: código del lote (izq) y empresa + instalación (der).
func headerRow(data *trace.SheetData) core.Row {
	facility := ""
	if data.Facility != nil {
		facility = data.Facility.Name
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("HOJA DE TRAZABILIDAD", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(data.Batch.BatchCode, props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New(facility, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3,
			}),
			text.New("Emitida: "+data.Batch.UpdatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// batchSheetRows: la ficha del lote en dos columnas de pares campo/valor.
func batchSheetRows(data *trace.SheetData) []core.Row {
	cultivar := "—"
	if data.Cultivar != nil {
		cultivar = data.Cultivar.Name
	}
	cropType := "—"
	if data.CropType != nil {
		cropType = data.CropType.Name
	}
	area := "—"
	if data.Area != nil {
		area = data.Area.Name
	}
	b := data.Batch
	pairs := [][2]string{
		{"Tipo de cultivo", cropType},
		{"Cultivar", cultivar},
		{"Área actual", area},
		{"Fase", b.CurrentPhase},
		{"Estado", b.Status},
		{"Origen", b.SourceType},
		{"Cantidad inicial", fmt.Sprintf("%d", b.InitialQuantity)},
		{"Cantidad actual", fmt.Sprintf("%d", b.CurrentQuantity)},
		{"Pérdidas", fmt.Sprintf("%d (%d%%)", b.LostQuantity, b.MortalityRate)},
		{"Inicio", b.StartDate.Format("02/01/2006")},
	}

	rows := make([]core.Row, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		cols := []core.Col{fieldCol(pairs[i][0], pairs[i][1])}
		if i+1 < len(pairs) {
			cols = append(cols, fieldCol(pairs[i+1][0], pairs[i+1][1]))
		}
		rows = append(rows, row.New(9).Add(cols...))
	}
	return rows
}

func fieldCol(label, value string) core.Col {
	return col.New(6).Add(
		text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
		text.New(value, props.Text{Size: 8, Top: 5, Color: colorGray}),
	)
}

// lineageRows: un renglón por vínculo etiquetado, con los códigos de lote.
func lineageRows(data *trace.SheetData) []core.Row {
	codes := make(map[string]string, len(data.Family))
	for _, b := range data.Family {
		codes[b.ID] = b.BatchCode
	}
	labels := map[string]string{
		batchdomain.LinkParentOf:   "dividido en",
		batchdomain.LinkSplitFrom:  "proviene de",
		batchdomain.LinkMergedInto: "fusionado en",
	}
	rows := make([]core.Row, 0, len(data.Links))
	for _, l := range data.Links {
		label := labels[l.Kind]
		if label == "" {
			label = l.Kind
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s  %s  %s", codes[l.From], label, codes[l.To]),
				props.Text{Size: 8, Top: 1, Left: 2}),
		)))
	}
	return rows
}

// movementRows: cabecera + una fila por traslado.
func movementRows(movements []*entity.BatchMovement) []core.Row {
	rows := []core.Row{tableHeader("Fecha", "Motivo", "Notas")}
	for _, mv := range movements {
		rows = append(rows, tableRow(
			mv.CreatedAt.Format("02/01/2006"),
			nonEmpty(mv.Reason, "—"),
			nonEmpty(mv.Notes, "—"),
		))
	}
	return rows
}

// lossRows: cabecera + una fila por pérdida.
func lossRows(losses []*entity.BatchLoss) []core.Row {
	rows := []core.Row{tableHeader("Fecha", "Cantidad", "Motivo")}
	for _, l := range losses {
		rows = append(rows, tableRow(
			l.CreatedAt.Format("02/01/2006"),
			fmt.Sprintf("%d", l.Quantity),
			nonEmpty(l.Reason, "—"),
		))
	}
	return rows
}

func tableHeader(a, b, c string) core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Left: 1,
		}))
	}
	return row.New(6).Add(h(a, 3), h(b, 3), h(c, 6))
}

func tableRow(a, b, c string) core.Row {
	v := func(value string, size int) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Top: 1, Left: 1}))
	}
	return row.New(5).Add(v(a, 3), v(b, 3), v(c, 6))
}

// harvestRow: bloque con los datos de la cosecha.
func harvestRow(h *entity.BatchHarvest) core.Row {
	humidity := "—"
	if h.HumidityPct != nil {
		humidity = h.HumidityPct.StringFixed(1) + "%"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Fecha: %s   |   Peso total: %s %s   |   Calidad: %s   |   Humedad: %s",
				h.HarvestDate.Format("02/01/2006"),
				h.TotalWeight.StringFixed(2), h.WeightUnit,
				nonEmpty(h.QualityGrade, "—"),
				humidity,
			), props.Text{Size: 9, Top: 2}),
			text.New(nonEmpty(h.Notes, ""), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

// footerRow: QR con el código del lote para escanear en campo.
func footerRow(b *entity.Batch) core.Row {
	return row.New(35).Add(
		col.New(4).Add(code.NewQr(b.BatchCode, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Escanea el código QR para consultar\nel lote en la plataforma.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Documento de soporte de trazabilidad.\nConsérvelo junto al lote.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 18, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
