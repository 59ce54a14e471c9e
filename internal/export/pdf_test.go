package export

import (
	"strings"
	"testing"
)

func TestGeneratePDF(t *testing.T) {
	result, err := GeneratePDF(testDocument())
	if err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}

	if len(result) == 0 {
		t.Fatal("expected non-empty PDF bytes")
	}
	if !strings.HasPrefix(string(result[:5]), "%PDF-") {
		t.Errorf("output does not start with a PDF header: %q", result[:5])
	}
}

func TestGeneratePDFEmptyDocument(t *testing.T) {
	doc := testDocument()
	doc.Lines = nil

	result, err := GeneratePDF(doc)
	if err != nil {
		t.Fatalf("GeneratePDF with no lines: %v", err)
	}
	if len(result) == 0 {
		t.Fatal("expected non-empty PDF bytes even without lines")
	}
}
