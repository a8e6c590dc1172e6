package middleware

import "testing"

func TestParseAdminFlag(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{" true ", true},
		{"", false},
		{"0", false},
		{"false", false},
		{"admin", false},
		{"2", false},
	}

	for _, tt := range tests {
		if got := parseAdminFlag(tt.raw); got != tt.want {
			t.Errorf("parseAdminFlag(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
