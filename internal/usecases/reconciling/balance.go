package reconciling

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/vfg2006/desossa-api/pkg/utils"
)

// BalanceCalculator combina os três agregados em um saldo por corte da lista canônica
type BalanceCalculator struct {
	cuts      []string
	formatter *utils.NumberFormatter
}

func NewBalanceCalculator(cuts []string, formatter *utils.NumberFormatter) *BalanceCalculator {
	return &BalanceCalculator{
		cuts:      append([]string(nil), cuts...),
		formatter: formatter,
	}
}

// Compute calcula net = produção + estoque - pedidos. Cortes ausentes valem 0
// e o saldo não é limitado: negativo indica venda acima do disponível.
func (c *BalanceCalculator) Compute(production, stock, pending map[string]float64) []domain.ATPBalance {
	balances := make([]domain.ATPBalance, 0, len(c.cuts))
	for _, cut := range c.cuts {
		p, s, o := production[cut], stock[cut], pending[cut]

		net := decimal.NewFromFloat(p).
			Add(decimal.NewFromFloat(s)).
			Sub(decimal.NewFromFloat(o))

		balances = append(balances, domain.ATPBalance{
			Cut:           cut,
			Production:    p,
			PhysicalStock: s,
			PendingOrders: o,
			Net:           net.InexactFloat64(),
		})
	}
	return balances
}

// Display formata os saldos na localidade configurada, sem alterar os valores calculados
func (c *BalanceCalculator) Display(balances []domain.ATPBalance) []domain.ATPBalanceDisplay {
	if c.formatter == nil {
		return nil
	}

	display := make([]domain.ATPBalanceDisplay, 0, len(balances))
	for _, b := range balances {
		display = append(display, domain.ATPBalanceDisplay{
			Cut:           b.Cut,
			Production:    c.formatter.Format(b.Production),
			PhysicalStock: c.formatter.Format(b.PhysicalStock),
			PendingOrders: c.formatter.Format(b.PendingOrders),
			Net:           c.formatter.Format(b.Net),
			Oversold:      b.Oversold(),
		})
	}
	return display
}

func (c *BalanceCalculator) Cuts() []string {
	return append([]string(nil), c.cuts...)
}
