package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseFiltersAlwaysReturnsFullSet(t *testing.T) {
	messages := []string{
		"",
		"oi",
		"me mostra o que você tem",
		"quero um carro bom e barato !!!",
		"😀😀😀",
	}
	for _, msg := range messages {
		f := ParseFilters(msg)
		if f == nil {
			t.Fatalf("ParseFilters(%q) returned nil", msg)
		}
		if !f.IsEmpty() {
			t.Errorf("ParseFilters(%q) extracted filters from noise: %+v", msg, f)
		}
	}
}

func TestParseFiltersCategorical(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		bodyType     string
		transmission string
		fuel         string
	}{
		{"suv automatic flex", "quero um SUV automático flex", "SUV", "Automática", "flex"},
		{"accented transmission", "sedan automática", "Sedan", "Automática", ""},
		{"unaccented transmission", "sedan automatica", "Sedan", "Automática", ""},
		{"cvt", "hatch cvt", "Hatch", "CVT", ""},
		{"pickup synonym", "uma pickup diesel", "Picape", "", "diesel"},
		{"wagon synonym", "procuro uma wagon", "Perua", "", ""},
		{"ethanol synonym", "carro a etanol", "", "", "alcool"},
		{"accented fuel", "movido a álcool", "", "", "alcool"},
		{"electric accented", "um elétrico", "", "", "eletrico"},
		{"electric plain", "um eletrico", "", "", "eletrico"},
		{"hybrid", "sedan híbrido", "Sedan", "", "hibrido"},
		{"case insensitive", "SEDAN MANUAL GASOLINA", "Sedan", "Manual", "gasolina"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseFilters(tt.message)
			checkStringPtr(t, "body_type", f.BodyType, tt.bodyType)
			checkStringPtr(t, "transmission", f.Transmission, tt.transmission)
			checkStringPtr(t, "fuel", f.Fuel, tt.fuel)
		})
	}
}

func TestParseFiltersPrice(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"mil shorthand", "SUV até 120 mil", "120000"},
		{"grouped thousands", "SUV até 120.000", "120000"},
		{"plain trigger por", "sedan por 95.000", "95000"},
		{"operator", "hatch <= 80 mil", "80000"},
		{"no maximo", "no máximo R$ 60.000", "60000"},
		{"currency sign", "até R$ 150 mil", "150000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseFilters(tt.message)
			if f.PriceMax == nil {
				t.Fatalf("ParseFilters(%q) did not extract a price ceiling", tt.message)
			}
			want := decimal.RequireFromString(tt.want)
			if !f.PriceMax.Equal(want) {
				t.Errorf("price ceiling = %s, want %s", f.PriceMax, want)
			}
		})
	}

	t.Run("mil equals grouped spelling", func(t *testing.T) {
		a := ParseFilters("até 120 mil")
		b := ParseFilters("até 120.000")
		if a.PriceMax == nil || b.PriceMax == nil || !a.PriceMax.Equal(*b.PriceMax) {
			t.Errorf("spellings disagree: %v vs %v", a.PriceMax, b.PriceMax)
		}
	})

	t.Run("no trigger no price", func(t *testing.T) {
		f := ParseFilters("tenho 120000 reais guardados")
		if f.PriceMax != nil {
			t.Errorf("extracted price without a ceiling trigger: %s", f.PriceMax)
		}
	})
}

func TestParseFiltersYears(t *testing.T) {
	t.Run("minimum year", func(t *testing.T) {
		f := ParseFilters("SUV a partir de 2020")
		if f.YearMin == nil || *f.YearMin != 2020 {
			t.Fatalf("year_min = %v, want 2020", f.YearMin)
		}
	})

	t.Run("range normalizes order", func(t *testing.T) {
		for _, msg := range []string{"sedan 2017-2022", "sedan 2022-2017", "sedan 2022 - 2017"} {
			f := ParseFilters(msg)
			if f.YearRange == nil {
				t.Fatalf("ParseFilters(%q) did not extract a year range", msg)
			}
			if f.YearRange[0] != 2017 || f.YearRange[1] != 2022 {
				t.Errorf("ParseFilters(%q) range = %v, want [2017 2022]", msg, *f.YearRange)
			}
		}
	})
}

func TestParseFiltersDoors(t *testing.T) {
	f := ParseFilters("hatch 4 portas")
	if f.Doors == nil || *f.Doors != 4 {
		t.Fatalf("doors = %v, want 4", f.Doors)
	}

	// A digit inside a year must not read as a door count.
	f = ParseFilters("carro ano 2004")
	if f.Doors != nil {
		t.Errorf("extracted doors from a year: %d", *f.Doors)
	}
}

func TestParseFiltersExtractsIndependently(t *testing.T) {
	// Contradictory on purpose: extraction does not validate combinations.
	f := ParseFilters("picape elétrico 2 portas até 50 mil a partir de 2024")
	checkStringPtr(t, "body_type", f.BodyType, "Picape")
	checkStringPtr(t, "fuel", f.Fuel, "eletrico")
	if f.Doors == nil || *f.Doors != 2 {
		t.Errorf("doors = %v, want 2", f.Doors)
	}
	if f.PriceMax == nil || !f.PriceMax.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("price ceiling = %v, want 50000", f.PriceMax)
	}
	if f.YearMin == nil || *f.YearMin != 2024 {
		t.Errorf("year_min = %v, want 2024", f.YearMin)
	}
}

func checkStringPtr(t *testing.T, field string, got *string, want string) {
	t.Helper()
	if want == "" {
		if got != nil {
			t.Errorf("%s = %q, want unset", field, *got)
		}
		return
	}
	if got == nil {
		t.Errorf("%s unset, want %q", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %q, want %q", field, *got, want)
	}
}
