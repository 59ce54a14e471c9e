// Package export renders the formal quote document: PDF and Excel downloads
// plus the plain-text summary shared over WhatsApp.
package export

import (
	"fmt"
	"strings"
)

// Line is one job of the formal quote set, flattened to what the document shows.
type Line struct {
	Description       string
	Width             float64
	Height            float64
	Quantity          float64
	FinalPrice        float64
	IncludeDesign     bool
	IncludeTubes      bool
	UrgencyPercentage float64
	HasImage          bool
}

// UnitPrice derives the per-unit value shown on the document. Quantity is
// expected to be at least 1 but is not enforced upstream, so zero is guarded
// here rather than crashing the render.
func (l Line) UnitPrice() float64 {
	if l.Quantity == 0 {
		return l.FinalPrice
	}
	return l.FinalPrice / l.Quantity
}

// Specs builds the specification line under each document row.
func (l Line) Specs() string {
	parts := []string{
		fmt.Sprintf("%sx%scm", formatQty(l.Width), formatQty(l.Height)),
	}
	if l.IncludeDesign {
		parts = append(parts, "Incluye Diseño")
	} else {
		parts = append(parts, "Material Cliente")
	}
	if l.UrgencyPercentage > 0 {
		parts = append(parts, fmt.Sprintf("Entrega Urgente (+%s%%)", formatQty(l.UrgencyPercentage)))
	} else {
		parts = append(parts, "Entrega Estándar")
	}
	if ShowsTubes(l.Description) {
		if l.IncludeTubes {
			parts = append(parts, "Con Tubos")
		} else {
			parts = append(parts, "Sin Tubos")
		}
	}
	return strings.Join(parts, " • ")
}

// Document carries everything the exported quote needs: shop identity for the
// letterhead, customer fields and the ordered job lines.
type Document struct {
	ShopName      string
	ShopSlogan    string
	ShopCity      string
	ShopPhone     string
	CustomerName  string
	CustomerPhone string
	Date          string
	Lines         []Line
}

// GrandTotal sums the final prices of every line in the set.
func (d Document) GrandTotal() float64 {
	var total float64
	for _, l := range d.Lines {
		total += l.FinalPrice
	}
	return total
}

// CustomerLabel is the customer name with the placeholder used when none was
// captured.
func (d Document) CustomerLabel() string {
	if strings.TrimSpace(d.CustomerName) == "" {
		return "CLIENTE PARTICULAR"
	}
	return strings.ToUpper(d.CustomerName)
}

// ShowsTubes reports whether the tube finishing flag is meaningful for a
// description. Unlike the engine's classifier this check uppercases first:
// it decides document presentation, not pricing.
func ShowsTubes(description string) bool {
	desc := strings.ToUpper(description)
	return strings.Contains(desc, "PENDON") || strings.Contains(desc, "BANNER")
}
