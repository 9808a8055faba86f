package share

import (
	"net/url"
	"strconv"
)

// UPIPayload builds the upi://pay URI encoded into payment QR codes.
// Returns "" when no UPI id is configured.
func UPIPayload(upiID string, amount float64, payeeName string) string {
	if upiID == "" {
		return ""
	}
	if payeeName == "" {
		payeeName = "SmartDukaan"
	}
	params := url.Values{}
	params.Set("pa", upiID)
	params.Set("pn", payeeName)
	if amount > 0 {
		params.Set("am", strconv.FormatFloat(amount, 'f', 2, 64))
	} else {
		params.Set("am", "")
	}
	params.Set("cu", "INR")
	return "upi://pay?" + params.Encode()
}
