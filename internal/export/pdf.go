package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	brandRed  = &props.Color{Red: 236, Green: 50, Blue: 55}
	charcoal  = &props.Color{Red: 30, Green: 41, Blue: 59}
	slateGray = &props.Color{Red: 120, Green: 120, Blue: 120}
	lightGray = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// GeneratePDF renders the formal quote document and returns the raw PDF bytes.
func GeneratePDF(doc Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   slateGray,
		}).
		Build()

	m := maroto.New(cfg)

	addLetterhead(m, doc)
	addCustomerBlock(m, doc)
	addTableHeader(m)
	for _, l := range doc.Lines {
		addLineRows(m, l)
	}
	addTotal(m, doc)
	addServiceNotes(m)

	rendered, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate quote pdf: %w", err)
	}

	return rendered.GetBytes(), nil
}

func addLetterhead(m core.Maroto, doc Document) {
	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(
				text.New(doc.ShopName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: charcoal,
				}),
			),
			col.New(5).Add(
				text.New(doc.ShopCity, props.Text{
					Size:  9,
					Align: align.Right,
					Color: slateGray,
				}),
			),
		),
	)

	contact := doc.ShopPhone
	if contact == "" {
		contact = doc.ShopSlogan
	}
	m.AddRows(
		row.New(6).Add(
			col.New(7).Add(
				text.New(doc.ShopSlogan, props.Text{
					Size:  8,
					Align: align.Left,
					Color: slateGray,
				}),
			),
			col.New(5).Add(
				text.New(contact, props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: brandRed,
				}),
			),
		),
	)

	m.AddRows(
		row.New(14).Add(
			col.New(12).Add(
				text.New("COTIZACIÓN FORMAL", props.Text{
					Size:  20,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: charcoal,
					Top:   4,
				}),
			),
		),
	)
}

func addCustomerBlock(m core.Maroto, doc Document) {
	m.AddRows(
		row.New(7).Add(
			col.New(8).Add(
				text.New("Cliente / Empresa:", props.Text{
					Size:  8,
					Align: align.Left,
					Color: slateGray,
				}),
			),
			col.New(4).Add(
				text.New("Fecha Documento:", props.Text{
					Size:  8,
					Align: align.Right,
					Color: slateGray,
				}),
			),
		),
		row.New(9).Add(
			col.New(8).Add(
				text.New(doc.CustomerLabel(), props.Text{
					Size:  13,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: charcoal,
				}),
			),
			col.New(4).Add(
				text.New(doc.Date, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: charcoal,
				}),
			),
		),
		row.New(6),
	)
}

func addTableHeader(m core.Maroto) {
	headerCell := props.Cell{BackgroundColor: charcoal}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	m.AddRows(
		row.New(8).Add(
			col.New(7).Add(
				text.New("Descripción Detallada", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Cant", headerText),
			).WithStyle(&headerCell),
			col.New(3).Add(
				text.New("V. Unitario", headerText),
			).WithStyle(&headerCell),
		),
	)
}

func addLineRows(m core.Maroto, l Line) {
	m.AddRows(
		row.New(8).Add(
			col.New(7).Add(
				text.New(l.Description, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: charcoal,
					Top:   2,
				}),
			),
			col.New(2).Add(
				text.New(formatQty(l.Quantity), props.Text{
					Size:  10,
					Align: align.Center,
					Top:   2,
				}),
			),
			col.New(3).Add(
				text.New(FormatCOP(l.UnitPrice()), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: brandRed,
					Top:   2,
				}),
			),
		),
	)

	specs := "Especificaciones: " + l.Specs()
	if l.HasImage {
		specs += " • Borrador adjunto"
	}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(specs, props.Text{
					Size:  7,
					Align: align.Left,
					Color: slateGray,
				}),
			),
		),
	)
}

func addTotal(m core.Maroto, doc Document) {
	totalCell := &props.Cell{BackgroundColor: lightGray}

	m.AddRows(
		row.New(4),
		row.New(12).Add(
			col.New(7).Add(
				text.New("TOTAL INVERSIÓN BRUTA", props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: slateGray,
					Top:   3,
				}),
			).WithStyle(totalCell),
			col.New(5).Add(
				text.New(FormatCOP(doc.GrandTotal()), props.Text{
					Size:  15,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: charcoal,
					Top:   2,
				}),
			).WithStyle(totalCell),
		),
	)
}

func addServiceNotes(m core.Maroto) {
	notes := []string{
		"El valor total incluye los impuestos de ley según régimen del cliente.",
		"Los tiempos de entrega inician tras el pago del anticipo (80%) y aprobación de artes.",
		"Garantía de calidad en fidelidad de color y acabados profesionales.",
	}

	m.AddRows(
		row.New(8),
		row.New(7).Add(
			col.New(12).Add(
				text.New("NOTAS DE SERVICIO", props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: brandRed,
				}),
			),
		),
	)

	for _, note := range notes {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New("▶ "+note, props.Text{
						Size:  8,
						Align: align.Left,
						Color: slateGray,
					}),
				),
			),
		)
	}
}
