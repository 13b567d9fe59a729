package service

import (
	"strings"
	"testing"

	"motorchat/internal/model"
)

func TestFallbackReplyEmptyStock(t *testing.T) {
	got := FallbackReply(nil, 0, 5)
	if !strings.Contains(got, "Desculpe") {
		t.Errorf("empty-stock reply = %q, want an apology", got)
	}
}

func TestFallbackReplyContent(t *testing.T) {
	vehicles := []model.Vehicle{
		car("Jeep", "Renegade", 2022, "SUV", "Automática", "flex", 4, "115900.00"),
		car("Fiat", "Pulse", 2023, "SUV", "CVT", "flex", 4, "98000.00"),
	}

	got := FallbackReply(vehicles, 2, 5)

	if !strings.Contains(got, "Encontrei 2 veículos") {
		t.Errorf("reply missing the match count:\n%s", got)
	}
	if !strings.Contains(got, "Jeep Renegade 2022") || !strings.Contains(got, "R$ 115900.00") {
		t.Errorf("reply missing vehicle facts:\n%s", got)
	}
	if !strings.Contains(got, "refine por ano, preço ou câmbio") {
		t.Errorf("reply missing the closing suggestion:\n%s", got)
	}
}

func TestFallbackReplyDeterministic(t *testing.T) {
	vehicles := []model.Vehicle{
		car("Fiat", "Argo", 2019, "Hatch", "Manual", "flex", 4, "62000"),
	}
	a := FallbackReply(vehicles, 1, 5)
	b := FallbackReply(vehicles, 1, 5)
	if a != b {
		t.Errorf("same inputs produced different replies:\n%s\n---\n%s", a, b)
	}
}

func TestFallbackReplyHonorsLimit(t *testing.T) {
	vehicles := make([]model.Vehicle, 0, 8)
	for i := 0; i < 8; i++ {
		vehicles = append(vehicles, car("Fiat", "Mobi", 2020, "Hatch", "Manual", "flex", 4, "48000"))
	}

	got := FallbackReply(vehicles, 8, 3)

	if lines := strings.Count(got, "- Fiat Mobi"); lines != 3 {
		t.Errorf("example lines = %d, want 3", lines)
	}
	if !strings.Contains(got, "Encontrei 8 veículos") {
		t.Errorf("reply lost the exact total:\n%s", got)
	}
}
