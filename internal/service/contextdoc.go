package service

import (
	"fmt"
	"strings"

	"motorchat/internal/model"
)

// noMatchSentinel is emitted when the effective result set is empty, so the
// context never has a silently missing example section.
const noMatchSentinel = "Nenhum veículo correspondente encontrado no estoque."

// BuildContext renders the catalog snapshot handed to the text-generation
// collaborator: summary header lines followed by up to maxExamples example
// records in recency order. Every fact comes verbatim from the summary or a
// stored record; nothing is rounded or synthesized here.
func BuildContext(summary *model.AggregateSummary, vehicles []model.Vehicle, maxExamples int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total de veículos compatíveis: %d\n", summary.Total)
	if summary.YearMin > 0 {
		fmt.Fprintf(&b, "Anos: %d a %d\n", summary.YearMin, summary.YearMax)
	}
	if len(summary.ByBody) > 0 {
		fmt.Fprintf(&b, "Carrocerias: %s\n", joinCounts(summary.ByBody))
	}
	if len(summary.ByFuel) > 0 {
		fmt.Fprintf(&b, "Combustíveis: %s\n", joinCounts(summary.ByFuel))
	}
	if len(summary.TopPriceBands) > 0 {
		parts := make([]string, len(summary.TopPriceBands))
		for i, band := range summary.TopPriceBands {
			parts[i] = fmt.Sprintf("%s (%d)", band.Label, band.Count)
		}
		fmt.Fprintf(&b, "Faixas de preço (R$): %s\n", strings.Join(parts, ", "))
	}

	if len(vehicles) == 0 {
		b.WriteString(noMatchSentinel)
		return b.String()
	}

	if maxExamples >= 0 && len(vehicles) > maxExamples {
		vehicles = vehicles[:maxExamples]
	}
	b.WriteString("Estoque relevante:\n")
	for i := range vehicles {
		b.WriteString(vehicleLine(&vehicles[i]))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func joinCounts(counts []model.CategoryCount) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s (%d)", c.Category, c.Count)
	}
	return strings.Join(parts, ", ")
}

// vehicleLine renders one record with every stored field on a single line.
func vehicleLine(v *model.Vehicle) string {
	return fmt.Sprintf("- %s %s %d | %s, %s, %s, %s, %d portas, %s, %d km | R$ %s | VIN %s",
		v.Brand, v.Model, v.Year, v.BodyType, v.Transmission, v.FuelType,
		v.Engine, v.Doors, v.Color, v.MileageKM, v.Price.StringFixed(2), v.VIN)
}
