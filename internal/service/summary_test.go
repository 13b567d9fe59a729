package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"motorchat/internal/model"
)

func TestSummarizeExactAggregates(t *testing.T) {
	inv := seedInventory(t,
		car("Fiat", "Argo", 2019, "Hatch", "Manual", "flex", 4, "62000"),
		car("Fiat", "Pulse", 2023, "SUV", "CVT", "flex", 4, "98000"),
		car("Jeep", "Renegade", 2022, "SUV", "Automática", "flex", 4, "115000"),
		car("Toyota", "Hilux", 2021, "Picape", "Automática", "diesel", 4, "230000"),
	)

	s, err := Summarize(context.Background(), inv, nil, 300, 20000)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if s.Total != 4 {
		t.Errorf("Total = %d, want 4", s.Total)
	}
	if s.YearMin != 2019 || s.YearMax != 2023 {
		t.Errorf("year span = (%d, %d), want (2019, 2023)", s.YearMin, s.YearMax)
	}

	// Most frequent first, ties by category name.
	if len(s.ByBody) != 3 || s.ByBody[0].Category != "SUV" || s.ByBody[0].Count != 2 {
		t.Errorf("ByBody = %+v, want SUV(2) first", s.ByBody)
	}
	if len(s.ByFuel) != 2 || s.ByFuel[0].Category != "flex" || s.ByFuel[0].Count != 3 {
		t.Errorf("ByFuel = %+v, want flex(3) first", s.ByFuel)
	}
}

func TestSummarizeRespectsFilters(t *testing.T) {
	inv := seedInventory(t,
		car("Fiat", "Argo", 2019, "Hatch", "Manual", "flex", 4, "62000"),
		car("Jeep", "Renegade", 2022, "SUV", "Automática", "flex", 4, "115000"),
	)

	s, err := Summarize(context.Background(), inv, &model.FilterSet{BodyType: strPtr("SUV")}, 300, 20000)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Total != 1 {
		t.Errorf("Total = %d, want 1", s.Total)
	}
	if len(s.ByBody) != 1 || s.ByBody[0].Category != "SUV" {
		t.Errorf("ByBody = %+v, want only SUV", s.ByBody)
	}
	if s.YearMin != 2022 || s.YearMax != 2022 {
		t.Errorf("year span = (%d, %d), want (2022, 2022)", s.YearMin, s.YearMax)
	}
}

func TestSummarizeEmptySet(t *testing.T) {
	inv := seedInventory(t)

	s, err := Summarize(context.Background(), inv, nil, 300, 20000)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Total != 0 || s.YearMin != 0 || s.YearMax != 0 {
		t.Errorf("empty summary = %+v, want zeroes", s)
	}
	if len(s.ByBody) != 0 || len(s.ByFuel) != 0 || len(s.TopPriceBands) != 0 {
		t.Errorf("empty summary has groupings: %+v", s)
	}
}

func TestSummarizePriceBandsSampleCap(t *testing.T) {
	vehicles := make([]model.Vehicle, 0, 400)
	for i := 0; i < 400; i++ {
		price := fmt.Sprintf("%d", 40000+(i%8)*20000)
		vehicles = append(vehicles, car("Fiat", "Argo", 2020, "Hatch", "Manual", "flex", 4, price))
	}
	inv := seedInventory(t, vehicles...)

	s, err := Summarize(context.Background(), inv, nil, 300, 20000)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Total != 400 {
		t.Errorf("Total = %d, want exact 400", s.Total)
	}

	sum := 0
	for _, band := range s.TopPriceBands {
		sum += band.Count
	}
	if sum != 300 {
		t.Errorf("band counts sum to %d, want sample cap of 300", sum)
	}
}

func pricesOf(raw ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(raw))
	for _, r := range raw {
		out = append(out, decimal.RequireFromString(r))
	}
	return out
}

func TestPriceBandsLabelsAndCap(t *testing.T) {
	t.Run("label format", func(t *testing.T) {
		bands := priceBands(pricesOf("85900", "99999.99"), 20000)
		if len(bands) != 1 {
			t.Fatalf("len(bands) = %d, want 1", len(bands))
		}
		if bands[0].Label != "[80000, 99999]" {
			t.Errorf("label = %q, want \"[80000, 99999]\"", bands[0].Label)
		}
		if bands[0].Count != 2 {
			t.Errorf("count = %d, want 2", bands[0].Count)
		}
	})

	t.Run("top bands capped at ten", func(t *testing.T) {
		raw := []string{}
		for i := 0; i < 14; i++ {
			raw = append(raw, fmt.Sprintf("%d", 20000*i+100))
		}
		bands := priceBands(pricesOf(raw...), 20000)
		if len(bands) != 10 {
			t.Errorf("len(bands) = %d, want 10", len(bands))
		}
	})

	t.Run("frequency order with encounter tiebreak", func(t *testing.T) {
		bands := priceBands(pricesOf("150000", "30000", "35000", "151000"), 20000)
		if len(bands) != 2 {
			t.Fatalf("len(bands) = %d, want 2", len(bands))
		}
		// Equal counts keep first-encounter order.
		if bands[0].Label != "[140000, 159999]" {
			t.Errorf("first band = %q, want the first-encountered bucket", bands[0].Label)
		}
	})
}
