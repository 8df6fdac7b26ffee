// Package reconciling concilia produção, estoque físico e pedidos pendentes
// em um saldo disponível para promessa (ATP) por corte.
package reconciling

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

import (
	"context"
	"sort"
	"time"

	"github.com/vfg2006/desossa-api/infrastructure/repository"
	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/vfg2006/desossa-api/pkg/log"
	"github.com/vfg2006/desossa-api/pkg/utils"
)

type Reconciler interface {
	Reconcile(ctx context.Context) (*domain.AvailabilityReport, error)
}

type Service struct {
	production repository.ProductionRepository
	inventory  repository.InventoryRepository
	orders     repository.OrdersRepository
	mapper     *Mapper
	calculator *BalanceCalculator
	pending    map[domain.NormalizedKey]bool
	now        func() time.Time
}

// NewService recebe o mapeamento e a calculadora já montados; pendingStatuses vazio
// faz todas as linhas de pedido contarem
func NewService(
	production repository.ProductionRepository,
	inventory repository.InventoryRepository,
	orders repository.OrdersRepository,
	mapper *Mapper,
	calculator *BalanceCalculator,
	pendingStatuses []string,
) *Service {
	pending := make(map[domain.NormalizedKey]bool, len(pendingStatuses))
	for _, s := range pendingStatuses {
		if key := domain.NormalizeKey(s); key != "" {
			pending[key] = true
		}
	}

	return &Service{
		production: production,
		inventory:  inventory,
		orders:     orders,
		mapper:     mapper,
		calculator: calculator,
		pending:    pending,
		now:        time.Now,
	}
}

// Verify interface compliance
var _ Reconciler = (*Service)(nil)

// Reconcile lê as três fontes em sequência. Qualquer falha de leitura interrompe
// a conciliação, sem saldo parcial.
// Células inválidas e produtos sem mapeamento não interrompem; ficam no diagnóstico.
func (s *Service) Reconcile(ctx context.Context) (*domain.AvailabilityReport, error) {
	runID, err := utils.GenerateRunID()
	if err != nil {
		return nil, err
	}

	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx)
	diag := domain.NewDiagnostics()

	productionRows, err := s.production.ListProduction(ctx, diag)
	if err != nil {
		logger.WithError(err).Error("Falha ao ler o livro de produção")
		return nil, err
	}

	inventoryRows, err := s.inventory.ListInventory(ctx, diag)
	if err != nil {
		logger.WithError(err).Error("Falha ao ler o estoque físico")
		return nil, err
	}

	orderRows, err := s.orders.ListOrders(ctx, diag)
	if err != nil {
		logger.WithError(err).Error("Falha ao ler os pedidos pendentes")
		return nil, err
	}

	production := Aggregate(s.productionEntries(productionRows))
	stock := Aggregate(s.inventoryEntries(logger, inventoryRows, diag))
	pending := Aggregate(s.orderEntries(logger, orderRows, diag))

	balances := s.calculator.Compute(production, stock, pending)

	logger.WithFields(log.Fields{
		"cuts":           len(balances),
		"coerced_cells":  diag.CoercedCount(),
		"unmapped_rows":  diag.UnmappedCount(),
		"skipped_orders": diag.SkippedOrders,
	}).Info("Conciliação concluída")

	return &domain.AvailabilityReport{
		RunID:       runID,
		GeneratedAt: s.now(),
		Balances:    balances,
		Display:     s.calculator.Display(balances),
		Diagnostics: diag,
	}, nil
}

func (s *Service) productionEntries(rows []domain.ProductionRow) []Entry {
	entries := make([]Entry, 0, len(rows)*len(s.calculator.cuts))
	for _, row := range rows {
		for cut, weight := range row.Cuts {
			entries = append(entries, Entry{Cut: cut, Quantity: weight})
		}
	}
	return entries
}

func (s *Service) inventoryEntries(logger log.Logger, rows []domain.InventoryRow, diag *domain.Diagnostics) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		cut, ok := s.mapper.Resolve(row.Material)
		if !ok {
			unmapped(logger, diag, domain.UnmappedRow{
				Source:     domain.SourceInventory,
				Row:        row.Row,
				Identifier: row.Material,
				Quantity:   row.Quantity,
			})
			continue
		}
		entries = append(entries, Entry{Cut: cut, Quantity: row.Quantity})
	}
	return entries
}

func (s *Service) orderEntries(logger log.Logger, rows []domain.OrderRow, diag *domain.Diagnostics) []Entry {
	entries := make([]Entry, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if !s.isPending(row.Status) {
			diag.SkippedOrders++
			skipped++
			continue
		}

		cut, ok := s.mapper.Resolve(row.Product)
		if !ok {
			unmapped(logger, diag, domain.UnmappedRow{
				Source:     domain.SourceOrders,
				Row:        row.Row,
				Identifier: row.Product,
				Quantity:   row.Weight,
			})
			continue
		}
		entries = append(entries, Entry{Cut: cut, Quantity: row.Weight})
	}

	if len(rows) > 0 && skipped == len(rows) {
		logger.WithFields(log.Fields{
			"orders":           len(rows),
			"pending_statuses": s.pendingStatuses(),
		}).Warn("Nenhum pedido com status pendente, confira a coluna de status e ORDERS_PENDING_STATUSES")
	}
	return entries
}

func (s *Service) pendingStatuses() []string {
	statuses := make([]string, 0, len(s.pending))
	for key := range s.pending {
		statuses = append(statuses, string(key))
	}
	sort.Strings(statuses)
	return statuses
}

func (s *Service) isPending(status string) bool {
	if len(s.pending) == 0 {
		return true
	}
	return s.pending[domain.NormalizeKey(status)]
}

func unmapped(logger log.Logger, diag *domain.Diagnostics, row domain.UnmappedRow) {
	logger.WithFields(log.Fields{
		"source":     row.Source,
		"row":        row.Row,
		"identifier": row.Identifier,
	}).Warn("Linha sem corte mapeado excluída da soma")

	diag.AddUnmapped(row)
}
