package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateExcel(t *testing.T) {
	result, err := GenerateExcel(testDocument())
	if err != nil {
		t.Fatalf("GenerateExcel: %v", err)
	}
	if len(result) == 0 {
		t.Fatal("expected non-empty workbook bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(0); got != "Cotización" {
		t.Errorf("sheet name = %q, want %q", got, "Cotización")
	}

	desc, err := f.GetCellValue("Cotización", "A6")
	if err != nil {
		t.Fatalf("read first line cell: %v", err)
	}
	if desc != "PENDON" {
		t.Errorf("first line description = %q, want %q", desc, "PENDON")
	}

	price, err := f.GetCellValue("Cotización", "E6")
	if err != nil {
		t.Fatalf("read first line total cell: %v", err)
	}
	if price != "$180.000" {
		t.Errorf("first line total = %q, want %q", price, "$180.000")
	}
}

func TestGenerateExcelEmptyDocument(t *testing.T) {
	doc := testDocument()
	doc.Lines = nil

	result, err := GenerateExcel(doc)
	if err != nil {
		t.Fatalf("GenerateExcel with no lines: %v", err)
	}
	if len(result) == 0 {
		t.Fatal("expected non-empty workbook bytes even without lines")
	}
}

func TestSanitizeCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PENDON", "PENDON"},
		{"=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"+1+1", "'+1+1"},
		{"-5", "'-5"},
		{"@cmd", "'@cmd"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := sanitizeCell(tt.in); got != tt.want {
			t.Errorf("sanitizeCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
