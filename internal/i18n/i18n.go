// Package i18n carries the bilingual (English/Hindi) label table used across
// receipts, WhatsApp messages, and exports.
package i18n

import (
	"math"
	"strconv"
	"strings"
)

// Lang selects the output language.
type Lang string

const (
	English Lang = "en"
	Hindi   Lang = "hi"
)

// Entry holds both renderings of a label.
type Entry struct {
	EN string
	HI string
}

var translations = map[string]Entry{
	// Navigation
	"dashboard":   {"Dashboard", "डैशबोर्ड"},
	"newBill":     {"New Bill", "नया बिल"},
	"products":    {"Products", "उत्पाद"},
	"billHistory": {"Bill History", "बिल इतिहास"},
	"creditBook":  {"Credit Book", "उधार खाता"},
	"customers":   {"Customers", "ग्राहक"},
	"expenses":    {"Expenses", "खर्च"},
	"reports":     {"Reports", "रिपोर्ट"},
	"settings":    {"Settings", "सेटिंग्स"},

	// Labels
	"businessName": {"Business Name", "दुकान का नाम"},
	"address":      {"Address", "पता"},
	"phone":        {"Phone", "फ़ोन नंबर"},
	"customerName": {"Customer Name", "ग्राहक का नाम"},
	"productName":  {"Product Name", "उत्पाद का नाम"},
	"price":        {"Price", "कीमत"},
	"quantity":     {"Quantity", "मात्रा"},
	"total":        {"Total", "कुल"},
	"subtotal":     {"Subtotal", "उप-कुल"},
	"grandTotal":   {"Grand Total", "कुल योग"},
	"amountPaid":   {"Amount Paid", "भुगतान राशि"},
	"balance":      {"Balance Due", "बकाया राशि"},
	"paymentMode":  {"Payment Mode", "भुगतान का प्रकार"},
	"date":         {"Date", "तारीख"},
	"status":       {"Status", "स्थिति"},

	// Status
	"paid":    {"Paid", "भुगतान किया"},
	"unpaid":  {"Unpaid", "बाकी"},
	"pending": {"Pending", "लंबित"},

	// Payment modes
	"cash":   {"Cash", "नकद"},
	"upi":    {"UPI", "यूपीआई"},
	"card":   {"Card", "कार्ड"},
	"credit": {"Credit", "उधार"},

	// Categories
	"grocery":     {"Grocery", "किराना"},
	"electronics": {"Electronics", "इलेक्ट्रॉनिक्स"},
	"pharmacy":    {"Pharmacy", "दवाई"},
	"clothing":    {"Clothing", "कपड़े"},
	"hardware":    {"Hardware", "हार्डवेयर"},
	"stationery":  {"Stationery", "स्टेशनरी"},
	"restaurant":  {"Restaurant", "रेस्टोरेंट"},
	"general":     {"General Store", "जनरल स्टोर"},

	// Units
	"kg":     {"Kg", "किलो"},
	"liter":  {"Liter", "लीटर"},
	"piece":  {"Piece", "पीस"},
	"dozen":  {"Dozen", "दर्जन"},
	"box":    {"Box", "बॉक्स"},
	"packet": {"Packet", "पैकेट"},

	// Messages
	"noProducts":  {"No products found", "कोई उत्पाद नहीं मिला"},
	"noInvoices":  {"No bills found", "कोई बिल नहीं मिला"},
	"noCustomers": {"No customers found", "कोई ग्राहक नहीं मिला"},
	"success":     {"Success!", "सफल!"},
	"error":       {"Error occurred", "त्रुटि हुई"},
}

// T returns the label in the requested language, falling back to English,
// then to the key itself for unknown labels.
func T(key string, lang Lang) string {
	entry, ok := translations[key]
	if !ok {
		return key
	}
	if lang == Hindi && entry.HI != "" {
		return entry.HI
	}
	return entry.EN
}

// Bilingual renders "English (हिन्दी)" for form labels and receipts.
func Bilingual(key string) string {
	entry, ok := translations[key]
	if !ok {
		return key
	}
	return entry.EN + " (" + entry.HI + ")"
}

// FormatINR renders an amount with the rupee sign and Indian digit grouping
// (last three digits, then pairs): 1234567.5 -> "₹12,34,567.5". At most two
// decimal places are kept and trailing zeros dropped.
func FormatINR(amount float64) string {
	if math.IsNaN(amount) {
		amount = 0
	}
	negative := amount < 0
	if negative {
		amount = -amount
	}
	paise := int64(math.Round(amount * 100))
	whole := paise / 100
	frac := paise % 100

	grouped := groupIndian(strconv.FormatInt(whole, 10))

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("₹")
	b.WriteString(grouped)
	switch {
	case frac == 0:
	case frac%10 == 0:
		b.WriteString("." + strconv.FormatInt(frac/10, 10))
	default:
		if frac < 10 {
			b.WriteString(".0" + strconv.FormatInt(frac, 10))
		} else {
			b.WriteString("." + strconv.FormatInt(frac, 10))
		}
	}
	return b.String()
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
