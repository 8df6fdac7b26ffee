package reconciling

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/desossa-api/internal/domain"
)

// Entry é uma quantidade já normalizada e associada a um corte
type Entry struct {
	Cut      string
	Quantity float64
}

// Aggregate soma as quantidades por corte. A soma é decimal, então o resultado
// não depende da ordem das entradas.
func Aggregate(entries []Entry) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for _, e := range entries {
		sums[e.Cut] = sums[e.Cut].Add(decimal.NewFromFloat(e.Quantity))
	}

	totals := make(map[string]float64, len(sums))
	for cut, sum := range sums {
		totals[cut] = sum.InexactFloat64()
	}
	return totals
}

// Quantities converte os totais em lista ordenada pelo nome do corte
func Quantities(totals map[string]float64) []domain.AggregatedQuantity {
	result := make([]domain.AggregatedQuantity, 0, len(totals))
	for cut, total := range totals {
		result = append(result, domain.AggregatedQuantity{Cut: cut, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Cut < result[j].Cut
	})
	return result
}
