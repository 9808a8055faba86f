package validate

import "testing"

func TestPhone(t *testing.T) {
	valid := []string{"9876543210", "6000000000", "7123456789", "8999999999"}
	for _, number := range valid {
		if !Phone(number) {
			t.Fatalf("expected %q to be valid", number)
		}
	}
	invalid := []string{"", "5876543210", "987654321", "98765432100", "98765abc10", "+919876543210"}
	for _, number := range invalid {
		if Phone(number) {
			t.Fatalf("expected %q to be invalid", number)
		}
	}
}

func TestGSTIN(t *testing.T) {
	if !GSTIN("") {
		t.Fatal("empty GSTIN must be accepted (optional field)")
	}
	if !GSTIN("29ABCDE1234F1Z5") {
		t.Fatal("expected valid GSTIN to pass")
	}
	// Lower case input is upper-cased before matching.
	if !GSTIN("29abcde1234f1z5") {
		t.Fatal("expected lower-case GSTIN to pass")
	}
	invalid := []string{"29ABCDE1234F0Z5", "29ABCDE1234F1X5", "29ABCDE1234F1Z", "ABCDE1234F1Z5"}
	for _, gstin := range invalid {
		if GSTIN(gstin) {
			t.Fatalf("expected %q to be invalid", gstin)
		}
	}
}

func TestPIN(t *testing.T) {
	if !PIN("0000") || !PIN("4821") {
		t.Fatal("expected 4-digit PINs to pass")
	}
	invalid := []string{"", "123", "12345", "12a4"}
	for _, pin := range invalid {
		if PIN(pin) {
			t.Fatalf("expected %q to be invalid", pin)
		}
	}
}

func TestStructUsesJSONFieldNames(t *testing.T) {
	type form struct {
		BusinessName string `json:"business_name" validate:"required"`
		Phone        string `json:"phone" validate:"omitempty,inphone"`
	}
	if err := Struct(form{BusinessName: "Sharma Kirana", Phone: "9876543210"}); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
	err := Struct(form{})
	if err == nil || err.Error() != "business_name is required" {
		t.Fatalf("expected required message with json name, got %v", err)
	}
	err = Struct(form{BusinessName: "Sharma Kirana", Phone: "12345"})
	if err == nil || err.Error() != "phone must be a valid 10-digit Indian mobile number" {
		t.Fatalf("expected phone message, got %v", err)
	}
}

func TestValidatorTags(t *testing.T) {
	v := New()
	type form struct {
		Phone string `validate:"inphone"`
		GSTIN string `validate:"gstin"`
		PIN   string `validate:"pin4"`
	}
	if err := v.Struct(form{Phone: "9876543210", GSTIN: "29ABCDE1234F1Z5", PIN: "1234"}); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
	if err := v.Struct(form{Phone: "12345", GSTIN: "", PIN: "1234"}); err == nil {
		t.Fatal("expected phone validation failure")
	}
}
