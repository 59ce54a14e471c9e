package export

import (
	"strings"
	"testing"
)

func TestLineUnitPrice(t *testing.T) {
	line := Line{FinalPrice: 90000, Quantity: 3}
	if got := line.UnitPrice(); got != 30000 {
		t.Errorf("UnitPrice() = %v, want 30000", got)
	}

	// Zero quantity falls back to the full price instead of dividing by zero.
	line = Line{FinalPrice: 90000, Quantity: 0}
	if got := line.UnitPrice(); got != 90000 {
		t.Errorf("UnitPrice() with zero quantity = %v, want 90000", got)
	}
}

func TestLineSpecs(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want string
	}{
		{
			name: "banner with design, urgency and tubes",
			line: Line{
				Description:       "PENDON institucional",
				Width:             100,
				Height:            150,
				IncludeDesign:     true,
				IncludeTubes:      true,
				UrgencyPercentage: 20,
			},
			want: "100x150cm • Incluye Diseño • Entrega Urgente (+20%) • Con Tubos",
		},
		{
			name: "banner without tubes still shows the flag",
			line: Line{
				Description: "banner promocional",
				Width:       200,
				Height:      80,
			},
			want: "200x80cm • Material Cliente • Entrega Estándar • Sin Tubos",
		},
		{
			name: "plain product omits the tube flag",
			line: Line{
				Description: "ADHESIVO",
				Width:       30,
				Height:      30,
			},
			want: "30x30cm • Material Cliente • Entrega Estándar",
		},
		{
			name: "fractional dimensions keep two decimals",
			line: Line{
				Description: "ADHESIVO",
				Width:       30.5,
				Height:      21.25,
			},
			want: "30.50x21.25cm • Material Cliente • Entrega Estándar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Specs(); got != tt.want {
				t.Errorf("Specs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentGrandTotal(t *testing.T) {
	doc := Document{Lines: []Line{
		{FinalPrice: 120000},
		{FinalPrice: 45000},
		{FinalPrice: 35000},
	}}
	if got := doc.GrandTotal(); got != 200000 {
		t.Errorf("GrandTotal() = %v, want 200000", got)
	}

	if got := (Document{}).GrandTotal(); got != 0 {
		t.Errorf("GrandTotal() on empty document = %v, want 0", got)
	}
}

func TestDocumentCustomerLabel(t *testing.T) {
	doc := Document{CustomerName: "María Pérez"}
	if got := doc.CustomerLabel(); got != "MARÍA PÉREZ" {
		t.Errorf("CustomerLabel() = %q, want %q", got, "MARÍA PÉREZ")
	}

	doc = Document{CustomerName: "   "}
	if got := doc.CustomerLabel(); got != "CLIENTE PARTICULAR" {
		t.Errorf("CustomerLabel() without a name = %q, want placeholder", got)
	}
}

func TestShowsTubes(t *testing.T) {
	tests := []struct {
		description string
		want        bool
	}{
		{"PENDON", true},
		{"pendon para evento", true},
		{"Banner Publicitario", true},
		{"ADHESIVO", false},
		{"VINILO MICROPERFORADO", false},
	}

	for _, tt := range tests {
		if got := ShowsTubes(tt.description); got != tt.want {
			t.Errorf("ShowsTubes(%q) = %v, want %v", tt.description, got, tt.want)
		}
	}

	// Presentation is case-insensitive on purpose, unlike the pricing rules.
	if !ShowsTubes(strings.ToLower("PENDON MAS OJALES")) {
		t.Error("ShowsTubes should uppercase before matching")
	}
}
