package shop

import (
	"context"
	"strings"
	"testing"

	"github.com/smartdukaan/backend-dukaan/internal/common"
)

func TestUpdateRejectsBadInput(t *testing.T) {
	svc := &Service{}
	cases := []struct {
		name string
		in   Input
		want string
	}{
		{"missing business name", Input{}, "business_name is required"},
		{"bad phone", Input{BusinessName: "Sharma Kirana", Phone: "12345"}, "phone"},
		{"bad gstin", Input{BusinessName: "Sharma Kirana", GSTIN: "not-a-gstin"}, "gstin"},
		{"bad language", Input{BusinessName: "Sharma Kirana", Language: "fr"}, "language"},
	}
	for _, tc := range cases {
		_, err := svc.Update(context.Background(), tc.in)
		if err == nil || !common.IsAppError(err) {
			t.Fatalf("%s: expected bad request, got %v", tc.name, err)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected message mentioning %q, got %v", tc.name, tc.want, err)
		}
	}
}
