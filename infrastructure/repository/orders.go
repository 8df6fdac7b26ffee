package repository

//go:generate mockgen -source=orders.go -destination=mocks/orders.go -package=mocks

import (
	"context"
	"strings"

	"github.com/vfg2006/desossa-api/infrastructure/tabular"
	"github.com/vfg2006/desossa-api/internal/domain"
)

// OrdersColumns nomeia as colunas da aba de pedidos
type OrdersColumns struct {
	Product string
	Weight  string
	Status  string
}

type OrdersRepository interface {
	ListOrders(ctx context.Context, diag *domain.Diagnostics) ([]domain.OrderRow, error)
}

type ordersRepository struct {
	ref     sectionRef
	columns OrdersColumns
}

func NewOrdersRepository(store tabular.Store, table, section string, columns OrdersColumns) OrdersRepository {
	return &ordersRepository{
		ref:     sectionRef{store: store, table: table, section: section},
		columns: columns,
	}
}

// ListOrders retorna todas as linhas de pedido, inclusive as que não estão pendentes
func (r *ordersRepository) ListOrders(ctx context.Context, diag *domain.Diagnostics) ([]domain.OrderRow, error) {
	rows, err := r.ref.readRows(ctx)
	if err != nil {
		return nil, err
	}

	cells := cellReader{source: domain.SourceOrders, diag: diag}

	result := make([]domain.OrderRow, 0, len(rows))
	for i, raw := range rows {
		if raw.IsBlank() {
			continue
		}

		line := i + firstDataRow
		result = append(result, domain.OrderRow{
			Row:     line,
			Product: strings.TrimSpace(raw.Text(r.columns.Product)),
			Weight:  cells.quantity(raw, line, r.columns.Weight),
			Status:  strings.TrimSpace(raw.Text(r.columns.Status)),
		})
	}

	return result, nil
}
