package booking

import (
	"strings"
	"testing"
)

func TestGenerateTrackingID(t *testing.T) {
	id := GenerateTrackingID()

	if !strings.HasPrefix(id, "TRK-") {
		t.Errorf("expected TRK- prefix, got %q", id)
	}

	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("expected TRK-<millis>-<random>, got %q", id)
	}
	if len(parts[1]) != 6 {
		t.Errorf("expected 6-digit timestamp part, got %q", parts[1])
	}
	if len(parts[2]) != 4 {
		t.Errorf("expected zero-padded 4-digit random part, got %q", parts[2])
	}

	if !ValidTrackingIDFormat(id) {
		t.Errorf("generated ID %q must pass its own format check", id)
	}
}

func TestValidTrackingIDFormat(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"AB-1234", true},       // 7 chars, alnum + hyphen
		{"AB12", false},         // too short
		{"AB_123", false},       // underscore not allowed
		{"TRK-123456-0001", true},
		{"abc123", true},
		{"", false},
		{"ABC 1234", false},     // spaces not allowed
		{"------", true},        // hyphens alone still match the pattern
	}

	for _, tt := range tests {
		if got := ValidTrackingIDFormat(tt.id); got != tt.want {
			t.Errorf("ValidTrackingIDFormat(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
