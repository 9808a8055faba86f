package customer

import (
	"strings"
	"testing"

	"github.com/smartdukaan/backend-dukaan/internal/common"
)

func TestValidateInput(t *testing.T) {
	in := Input{Name: "  Ramesh  ", Phone: " 9876543210 ", Address: "MG Road"}
	if err := validateInput(&in); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	if in.Name != "Ramesh" || in.Phone != "9876543210" {
		t.Fatalf("expected trimmed fields, got %+v", in)
	}

	// Phone is optional.
	if err := validateInput(&Input{Name: "Ramesh"}); err != nil {
		t.Fatalf("expected phone to be optional, got %v", err)
	}

	err := validateInput(&Input{Phone: "9876543210"})
	if err == nil || !common.IsAppError(err) {
		t.Fatalf("expected bad request for missing name, got %v", err)
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Fatalf("expected name message, got %v", err)
	}

	err = validateInput(&Input{Name: "Ramesh", Phone: "12345"})
	if err == nil || !strings.Contains(err.Error(), "phone") {
		t.Fatalf("expected phone rejection, got %v", err)
	}
}
