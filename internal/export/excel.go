package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel renders the formal quote as an xlsx workbook and returns the
// file contents.
func GenerateExcel(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Cotización"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1]
	widths := []float64{36, 40, 8, 16, 16}
	for i, c := range columns {
		if err := f.SetColWidth(sheetName, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#1E293B"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	lineStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// Letterhead rows.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeCell(doc.ShopName+" - Cotización Formal"))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge customer row: %w", err)
	}
	f.SetCellValue(sheetName, "A2", sanitizeCell("Cliente: "+doc.CustomerLabel()))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date row: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Fecha: "+doc.Date)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// Column headers on row 5.
	headers := []string{"Descripción", "Especificaciones", "Cant", "V. Unitario", "V. Total"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s5", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	rowNum := 6
	for _, l := range doc.Lines {
		r := fmt.Sprintf("%d", rowNum)
		f.SetCellValue(sheetName, "A"+r, sanitizeCell(l.Description))
		f.SetCellValue(sheetName, "B"+r, sanitizeCell(l.Specs()))
		f.SetCellValue(sheetName, "C"+r, l.Quantity)
		f.SetCellValue(sheetName, "D"+r, FormatCOP(l.UnitPrice()))
		f.SetCellValue(sheetName, "E"+r, FormatCOP(l.FinalPrice))
		f.SetCellStyle(sheetName, "A"+r, lastCol+r, lineStyle)
		rowNum++
	}

	// Blank row, then the grand total.
	rowNum++
	r := fmt.Sprintf("%d", rowNum)
	f.SetCellValue(sheetName, "D"+r, "TOTAL:")
	f.SetCellValue(sheetName, "E"+r, FormatCOP(doc.GrandTotal()))
	f.SetCellStyle(sheetName, "D"+r, "E"+r, totalStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#CCCCCC", Style: 1},
		{Type: "right", Color: "#CCCCCC", Style: 1},
		{Type: "top", Color: "#CCCCCC", Style: 1},
		{Type: "bottom", Color: "#CCCCCC", Style: 1},
	}
}

// sanitizeCell prefixes values that Excel would interpret as formulas.
// Catalog names are free text, so this guards exported workbooks against
// formula injection.
func sanitizeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
