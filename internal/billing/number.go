package billing

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatInvoiceNumber renders the per-year sequential invoice number, for
// example INV-2026-0042.
func FormatInvoiceNumber(year, seq int) string {
	return fmt.Sprintf("INV-%d-%04d", year, seq)
}

// ParseInvoiceNumber splits an invoice number into year and sequence. The
// bool reports whether the number is well-formed.
func ParseInvoiceNumber(number string) (year, seq int, ok bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != "INV" {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 2000 {
		return 0, 0, false
	}
	seq, err = strconv.Atoi(parts[2])
	if err != nil || seq <= 0 {
		return 0, 0, false
	}
	return year, seq, true
}
