package export

import (
	"fmt"
	"math"
	"strconv"
)

// FormatCOP formats an amount as Colombian pesos: rounded to the nearest whole
// peso, thousands separated with dots, no decimals (e.g. $1.234.567).
// This display rounding is half-up on purpose; the engine's own
// ceiling-to-hundreds already happened when the price was computed.
func FormatCOP(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	rounded := int64(math.Round(amount))
	formatted := groupThousands(strconv.FormatInt(rounded, 10))

	if negative {
		return "-$" + formatted
	}
	return "$" + formatted
}

// groupThousands inserts a dot every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "." + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "." + result
}

// formatQty renders a quantity as a whole number when it has no fractional
// part, otherwise with two decimals.
func formatQty(q float64) string {
	if q == math.Trunc(q) {
		return fmt.Sprintf("%.0f", q)
	}
	return fmt.Sprintf("%.2f", q)
}
