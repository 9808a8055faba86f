// Package share builds the outbound sharing payloads: WhatsApp deep links,
// receipt and reminder messages, and UPI payment QR data. Everything here is
// pure string assembly; opening the links is the client's job.
package share

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/smartdukaan/backend-dukaan/internal/i18n"
)

// NormalizePhone strips non-digits and applies the Indian dialing rules:
// ten digits get the 91 prefix, a leading zero on eleven digits is replaced
// by 91, and anything longer than twelve digits keeps its last twelve.
// An empty result means "no target number".
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	clean := digits.String()
	switch {
	case len(clean) == 10:
		return "91" + clean
	case len(clean) == 11 && strings.HasPrefix(clean, "0"):
		return "91" + clean[1:]
	case len(clean) > 12:
		return clean[len(clean)-12:]
	}
	return clean
}

// WhatsAppLink returns a wa.me deep link carrying the prefilled text,
// addressed to the phone number when one is given.
func WhatsAppLink(text, phone string) string {
	encoded := url.QueryEscape(text)
	if target := NormalizePhone(phone); target != "" {
		return "https://wa.me/" + target + "?text=" + encoded
	}
	return "https://wa.me/?text=" + encoded
}

// Vendor is the shop letterhead for receipt messages.
type Vendor struct {
	BusinessName string
	Address      string
	Phone        string
	GSTIN        string
}

// InvoiceSummary is the slice of an invoice needed to compose a receipt.
type InvoiceSummary struct {
	Number      string
	CreatedAt   time.Time
	Items       []InvoiceLine
	Subtotal    float64
	GSTTotal    float64
	GrandTotal  float64
	Paid        bool
	PaymentMode string
}

// InvoiceLine is one receipt row.
type InvoiceLine struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Total     float64
}

const rule = "━━━━━━━━━━━━━━━"

// InvoiceMessage composes the WhatsApp receipt text for an invoice.
func InvoiceMessage(inv InvoiceSummary, vendor Vendor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 *%s*\n", vendor.BusinessName)
	if vendor.Address != "" {
		b.WriteString(vendor.Address + "\n")
	}
	if vendor.Phone != "" {
		b.WriteString("📞 " + vendor.Phone + "\n")
	}
	if vendor.GSTIN != "" {
		b.WriteString("GSTIN: " + vendor.GSTIN + "\n")
	}
	b.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&b, "*Invoice: %s*\n", inv.Number)
	fmt.Fprintf(&b, "Date: %s\n", inv.CreatedAt.Format("02/01/2006"))
	b.WriteString(rule + "\n\n")

	for i, item := range inv.Items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "▸ %s × %d\n   %s = %s",
			item.Name, item.Quantity, i18n.FormatINR(item.UnitPrice), i18n.FormatINR(item.Total))
	}

	b.WriteString("\n\n" + rule + "\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", i18n.FormatINR(inv.Subtotal))
	fmt.Fprintf(&b, "GST: %s\n", i18n.FormatINR(inv.GSTTotal))
	fmt.Fprintf(&b, "*Grand Total: %s*\n", i18n.FormatINR(inv.GrandTotal))
	b.WriteString(rule + "\n\n")

	if inv.Paid {
		b.WriteString("Payment: ✅ Paid\n")
	} else {
		b.WriteString("Payment: ⏳ Pending\n")
	}
	if inv.PaymentMode != "" {
		fmt.Fprintf(&b, "Mode: %s\n", strings.ToUpper(inv.PaymentMode))
	}
	b.WriteString("\nThank you for shopping with us! 🙏")
	return b.String()
}

// PaymentReminder composes a polite dues reminder for a credit customer.
func PaymentReminder(customerName string, amount float64, dueDate *time.Time) string {
	var b strings.Builder
	b.WriteString("🔔 *Payment Reminder*\n\n")
	fmt.Fprintf(&b, "Dear %s,\n\n", customerName)
	fmt.Fprintf(&b, "This is a friendly reminder about your pending payment of *%s*.\n", i18n.FormatINR(amount))
	if dueDate != nil {
		fmt.Fprintf(&b, "\nDue Date: %s\n", dueDate.Format("02/01/2006"))
	}
	b.WriteString("\nPlease clear the dues at your earliest convenience.\n\nThank you! 🙏")
	return b.String()
}
