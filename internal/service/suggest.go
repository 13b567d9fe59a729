package service

import "motorchat/internal/model"

// Suggest produces follow-up prompts for the client: refinement prompts
// first when the match count is large, then one prompt per unset dimension
// in a fixed order (body type, fuel, doors). The list is truncated at max,
// never reordered.
func Suggest(f *model.FilterSet, totalMatches, largeThreshold, max int) []string {
	out := []string{}

	if totalMatches > largeThreshold {
		out = append(out,
			"Informe um ano mínimo (ex.: a partir de 2020)",
			"Defina um teto de preço (ex.: até 120 mil)",
			"Escolha o câmbio (manual ou automático)",
		)
	}
	if f == nil || f.BodyType == nil {
		out = append(out, "Qual carroceria você procura? (SUV, sedan, hatch, picape...)")
	}
	if f == nil || f.Fuel == nil {
		out = append(out, "Qual combustível você prefere? (flex, gasolina, diesel, elétrico...)")
	}
	if f == nil || f.Doors == nil {
		out = append(out, "Quantas portas? (2, 4 ou 5)")
	}

	if len(out) > max {
		out = out[:max]
	}
	return out
}
