package repository

//go:generate mockgen -source=inventory.go -destination=mocks/inventory.go -package=mocks

import (
	"context"
	"strings"

	"github.com/vfg2006/desossa-api/infrastructure/tabular"
	"github.com/vfg2006/desossa-api/internal/domain"
)

type InventoryRepository interface {
	ListInventory(ctx context.Context, diag *domain.Diagnostics) ([]domain.InventoryRow, error)
}

type inventoryRepository struct {
	ref            sectionRef
	materialColumn string
	quantityColumn string
}

func NewInventoryRepository(store tabular.Store, table, section, materialColumn, quantityColumn string) InventoryRepository {
	return &inventoryRepository{
		ref:            sectionRef{store: store, table: table, section: section},
		materialColumn: materialColumn,
		quantityColumn: quantityColumn,
	}
}

func (r *inventoryRepository) ListInventory(ctx context.Context, diag *domain.Diagnostics) ([]domain.InventoryRow, error) {
	rows, err := r.ref.readRows(ctx)
	if err != nil {
		return nil, err
	}

	cells := cellReader{source: domain.SourceInventory, diag: diag}

	result := make([]domain.InventoryRow, 0, len(rows))
	for i, raw := range rows {
		if raw.IsBlank() {
			continue
		}

		line := i + firstDataRow
		result = append(result, domain.InventoryRow{
			Row:      line,
			Material: strings.TrimSpace(raw.Text(r.materialColumn)),
			Quantity: cells.quantity(raw, line, r.quantityColumn),
		})
	}

	return result, nil
}
