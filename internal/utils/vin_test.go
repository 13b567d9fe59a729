package utils

import (
	"strings"
	"testing"
)

func TestRandomVIN(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		vin := RandomVIN()
		if !ValidVIN(vin) {
			t.Fatalf("RandomVIN produced invalid VIN %q", vin)
		}
		seen[vin] = true
	}
	if len(seen) < 99 {
		t.Errorf("RandomVIN produced %d distinct values out of 100", len(seen))
	}
}

func TestNormalizeVIN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already valid", "9BJRENEGADE202201", "9BJRENEGADE202201"},
		{"lowercase", "9bjrenegade202201", "9BJRENEGADE202201"},
		{"strips separators", "9BJ-RENEGADE 2022.01", "9BJRENEGADE202201"},
		{"drops forbidden letters", "IOQ9BJRENEGADE202201", "9BJRENEGADE202201"},
		{"pads short input", "ABC123", "ABC12300000000000"},
		{"cuts long input", "9BJRENEGADE202201XYZ", "9BJRENEGADE202201"},
		{"empty stays empty", "", ""},
		{"only invalid chars", "---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeVIN(tt.input); got != tt.want {
				t.Errorf("NormalizeVIN(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidVIN(t *testing.T) {
	if !ValidVIN("9BJRENEGADE202201") {
		t.Error("rejected a valid VIN")
	}
	for _, vin := range []string{
		"",
		"SHORT",
		strings.Repeat("A", 18),
		"9BJRENEGADE20220I", // forbidden letter
		"9bjrenegade202201", // lowercase
	} {
		if ValidVIN(vin) {
			t.Errorf("accepted invalid VIN %q", vin)
		}
	}
}
