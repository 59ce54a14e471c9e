package export

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildShareMessage produces the WhatsApp-ready summary of the formal quote:
// one bullet per job with its raw dimensions and rounded price, then the
// grand total.
func BuildShareMessage(doc Document) string {
	customer := strings.TrimSpace(doc.CustomerName)
	if customer == "" {
		customer = "Cliente"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Cotización %s*\n\n", doc.ShopName)
	fmt.Fprintf(&b, "Hola %s,\nAdjuntamos el resumen de tu cotización:\n\n", customer)

	for _, l := range doc.Lines {
		fmt.Fprintf(&b, "• %s (%sx%scm) x%s: %s\n",
			l.Description,
			formatQty(l.Width), formatQty(l.Height),
			formatQty(l.Quantity),
			FormatCOP(l.FinalPrice),
		)
	}

	fmt.Fprintf(&b, "\n*TOTAL INVERSIÓN: %s*\n\n", FormatCOP(doc.GrandTotal()))
	fmt.Fprintf(&b, "_%s._", doc.ShopSlogan)

	return b.String()
}

// WhatsAppURL wraps a share message into a wa.me link.
func WhatsAppURL(message string) string {
	return "https://wa.me/?text=" + url.QueryEscape(message)
}
