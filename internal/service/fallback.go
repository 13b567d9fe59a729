package service

import (
	"fmt"
	"strings"

	"motorchat/internal/model"
)

const emptyStockReply = "Desculpe, não encontrei veículos compatíveis no estoque agora. " +
	"Posso buscar com filtros mais amplos, é só me dizer."

// FallbackReply builds the deterministic reply used when the text-generation
// collaborator is unavailable or fails: the exact match count, up to limit
// example lines from the most recent records, and a fixed closing
// suggestion. Same result set, same reply.
func FallbackReply(vehicles []model.Vehicle, total, limit int) string {
	if len(vehicles) == 0 {
		return emptyStockReply
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Encontrei %d veículos no estoque. Veja alguns destaques:\n", total)

	if limit >= 0 && len(vehicles) > limit {
		vehicles = vehicles[:limit]
	}
	for _, v := range vehicles {
		fmt.Fprintf(&b, "- %s %s %d | %s, %s, %s | R$ %s | %d km\n",
			v.Brand, v.Model, v.Year, v.BodyType, v.Transmission, v.FuelType,
			v.Price.StringFixed(2), v.MileageKM)
	}
	b.WriteString("Quer que eu refine por ano, preço ou câmbio?")
	return b.String()
}
