// Package pdf genera el menú imprimible del restaurante.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del restaurante   │  Fecha de impresión      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SECCIÓN (Entradas, Platos principales, ...)                 │
//	│    Platillo ............................... $Precio         │
//	│    Descripción · etiquetas                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR al menú en línea + leyenda                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/parrillafit-api/internal/application/ports"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
)

var _ ports.MenuRenderer = (*MenuPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 164, Green: 52, Blue: 26}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// tagLabels etiquetas impresas en español.
var tagLabels = map[entity.Tag]string{
	entity.TagLight:      "Light",
	entity.TagGlutenFree: "Sin gluten",
	entity.TagDairyFree:  "Sin lactosa",
	entity.TagSpicy:      "Picante",
	entity.TagVegetarian: "Vegetariano",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MenuPDFGenerator implementa ports.MenuRenderer usando Maroto v2.
type MenuPDFGenerator struct {
	qrURL string
}

// NewMenuPDFGenerator construye el generador. qrURL (opcional) se imprime como QR en el pie.
func NewMenuPDFGenerator(qrURL string) *MenuPDFGenerator {
	return &MenuPDFGenerator{qrURL: strings.TrimSpace(qrURL)}
}

// RenderMenu genera el PDF y devuelve sus bytes.
func (g *MenuPDFGenerator) RenderMenu(_ context.Context, doc ports.MenuDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(doc.Title, true).
		WithAuthor(doc.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.6}))

	if len(doc.Sections) == 0 {
		m.AddRows(row.New(14).Add(col.New(12).Add(
			text.New("No hay platillos disponibles por ahora.", props.Text{
				Size: 11, Align: align.Center, Color: colorGray, Top: 5,
			}),
		)))
	}
	for _, s := range doc.Sections {
		for _, r := range sectionRows(s) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range g.footerRows() {
		m.AddRows(r)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc ports.MenuDocument) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 18, Color: colorPrimary, Top: 1,
			}),
			text.New("Menú", props.Text{Size: 10, Top: 11, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Impreso: "+doc.GeneratedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// sectionRows título de la categoría y una fila doble por platillo.
func sectionRows(s ports.MenuSection) []core.Row {
	rows := []core.Row{
		row.New(12).Add(col.New(12).Add(
			text.New(strings.ToUpper(s.Title), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 5,
			}),
		)),
	}
	for _, d := range s.Dishes {
		rows = append(rows, row.New(7).Add(
			col.New(9).Add(text.New(d.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1})),
			col.New(3).Add(text.New("$"+formatMoney(d.Price), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			})),
		))
		if detail := dishDetail(d); detail != "" {
			rows = append(rows, row.New(6).Add(col.New(12).Add(
				text.New(detail, props.Text{Size: 8, Color: colorGray, Left: 2}),
			)))
		}
	}
	return rows
}

func (g *MenuPDFGenerator) footerRows() []core.Row {
	legend := "Consulta con nuestro personal sobre alérgenos. Precios en moneda nacional."
	if g.qrURL == "" {
		return []core.Row{row.New(10).Add(col.New(12).Add(
			text.New(legend, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 3}),
		))}
	}
	return []core.Row{row.New(36).Add(
		col.New(3).Add(code.NewQr(g.qrURL, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Escanea el código para ver el menú en línea.", props.Text{
				Size: 9, Top: 8, Left: 3, Color: colorPrimary,
			}),
			text.New(legend, props.Text{Size: 7, Top: 16, Left: 3, Color: colorGray}),
		),
	)}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// dishDetail descripción y etiquetas en una sola línea.
func dishDetail(d *entity.Dish) string {
	parts := make([]string, 0, 3)
	if s := strings.TrimSpace(d.Description); s != "" {
		parts = append(parts, s)
	}
	if d.Calories != nil {
		parts = append(parts, fmt.Sprintf("%d kcal", *d.Calories))
	}
	if len(d.Tags) > 0 {
		labels := make([]string, 0, len(d.Tags))
		for _, t := range d.Tags {
			labels = append(labels, tagLabels[t])
		}
		parts = append(parts, strings.Join(labels, ", "))
	}
	return strings.Join(parts, " · ")
}

// formatMoney dos decimales y punto de miles con coma decimal.
// Ej: 25000 → "25.000,00", 95.5 → "95,50"
func formatMoney(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
