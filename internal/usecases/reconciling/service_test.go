package reconciling

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/desossa-api/infrastructure/repository"
	"github.com/vfg2006/desossa-api/infrastructure/repository/mocks"
	"github.com/vfg2006/desossa-api/infrastructure/tabular/memory"
	"github.com/vfg2006/desossa-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var testCuts = []string{"A", "B", "C"}

// newTestService monta o serviço sobre um armazenamento em memória com as três fontes
func newTestService(t *testing.T, store *memory.Store, pendingStatuses []string) *Service {
	t.Helper()

	mappingRepo := repository.NewMappingRepository(store, "Pedidos_Pendentes", "De_Para", "descricao_produto", "corte")
	entries, err := mappingRepo.ListMappings(context.Background())
	require.NoError(t, err)

	mapper := NewMapper(testCuts, entries)

	return NewService(
		repository.NewProductionRepository(store, "Sistema_Desossa", "Rendimento", mapper.Cuts()),
		repository.NewInventoryRepository(store, "Estoque_Fisico", "Estoque", "material", "quantidade_kg"),
		repository.NewOrdersRepository(store, "Pedidos_Pendentes", "Pedidos", repository.OrdersColumns{
			Product: "product",
			Weight:  "weight",
			Status:  "status",
		}),
		mapper,
		NewBalanceCalculator(mapper.Cuts(), nil),
		pendingStatuses,
	)
}

func newTestStore() *memory.Store {
	store := memory.NewStore()
	store.AddSection("Sistema_Desossa", "Rendimento", repository.LedgerHeader(testCuts),
		[]any{"2024-03-15 08:00:00", 100.0, 50.0, 30.0, 20.0},
	)
	store.AddSection("Estoque_Fisico", "Estoque", []string{"material", "quantidade_kg"},
		[]any{"A granel", "10"},
	)
	store.AddSection("Pedidos_Pendentes", "Pedidos", []string{"product", "weight", "status"},
		[]any{"Produto A", "5", "PENDENTE"},
		[]any{"Produto B", "7", "ENTREGUE"},
	)
	store.AddSection("Pedidos_Pendentes", "De_Para", []string{"descricao_produto", "corte"},
		[]any{"A granel", "A"},
		[]any{"Produto A", "A"},
		[]any{"Produto B", "B"},
	)
	return store
}

func netByCut(report *domain.AvailabilityReport) map[string]float64 {
	net := make(map[string]float64, len(report.Balances))
	for _, b := range report.Balances {
		net[b.Cut] = b.Net
	}
	return net
}

func TestService_Reconcile(t *testing.T) {
	store := newTestStore()
	service := newTestService(t, store, []string{"PENDENTE"})

	report, err := service.Reconcile(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Equal(t, map[string]float64{"A": 55, "B": 30, "C": 20}, netByCut(report))
	assert.Equal(t, 1, report.Diagnostics.SkippedOrders)
	assert.Equal(t, 0, report.Diagnostics.UnmappedCount())
	assert.Nil(t, report.Display)
}

func TestService_ReconcileUnmappedOrder(t *testing.T) {
	store := newTestStore()
	store.AddSection("Pedidos_Pendentes", "Pedidos", []string{"product", "weight", "status"},
		[]any{"Produto A", "5", "PENDENTE"},
		[]any{"Picanha", "3", "pendente"},
	)
	service := newTestService(t, store, []string{"PENDENTE"})

	report, err := service.Reconcile(context.Background())
	require.NoError(t, err)

	// o pedido sem mapeamento não entra no saldo e fica no diagnóstico
	assert.Equal(t, map[string]float64{"A": 55, "B": 30, "C": 20}, netByCut(report))
	assert.Equal(t, 1, report.Diagnostics.UnmappedCount())
	assert.Equal(t, []string{"PICANHA"}, report.Diagnostics.UnmappedIdentifiers)
	assert.Equal(t, domain.UnmappedRow{
		Source:     domain.SourceOrders,
		Row:        3,
		Identifier: "Picanha",
		Quantity:   3,
	}, report.Diagnostics.UnmappedRows[0])
}

func TestService_ReconcileAllOrdersWithoutStatusFilter(t *testing.T) {
	store := newTestStore()
	service := newTestService(t, store, nil)

	report, err := service.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"A": 55, "B": 23, "C": 20}, netByCut(report))
	assert.Equal(t, 0, report.Diagnostics.SkippedOrders)
}

func TestService_ReconcileCoercedCells(t *testing.T) {
	store := newTestStore()
	store.AddSection("Estoque_Fisico", "Estoque", []string{"material", "quantidade_kg"},
		[]any{"A granel", "10"},
		[]any{"Produto B", "dez"},
		[]any{"C", "2,5"},
	)
	service := newTestService(t, store, []string{"PENDENTE"})

	report, err := service.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"A": 55, "B": 30, "C": 22.5}, netByCut(report))
	require.Equal(t, 1, report.Diagnostics.CoercedCount())
	assert.Equal(t, 3, report.Diagnostics.CoercedCells[0].Row)
}

func TestService_ReconcileNonFiniteCell(t *testing.T) {
	store := newTestStore()
	store.AddSection("Estoque_Fisico", "Estoque", []string{"material", "quantidade_kg"},
		[]any{"A granel", "10"},
		[]any{"Produto B", "1e400"},
	)
	service := newTestService(t, store, []string{"PENDENTE"})

	var report *domain.AvailabilityReport
	require.NotPanics(t, func() {
		var err error
		report, err = service.Reconcile(context.Background())
		require.NoError(t, err)
	})

	assert.Equal(t, map[string]float64{"A": 55, "B": 30, "C": 20}, netByCut(report))
	require.Equal(t, 1, report.Diagnostics.CoercedCount())
	assert.Equal(t, "1e400", report.Diagnostics.CoercedCells[0].Raw)
}

func TestService_ReconcileWarnsWhenEveryOrderIsSkipped(t *testing.T) {
	tests := []struct {
		name            string
		pendingStatuses []string
		expectWarning   bool
	}{
		{name: "Status configurado não aparece na aba", pendingStatuses: []string{"EM ABERTO"}, expectWarning: true},
		{name: "Parte dos pedidos pendentes", pendingStatuses: []string{"PENDENTE"}, expectWarning: false},
		{name: "Sem filtro de status", pendingStatuses: nil, expectWarning: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := logtest.NewGlobal()
			defer hook.Reset()

			service := newTestService(t, newTestStore(), tt.pendingStatuses)

			_, err := service.Reconcile(context.Background())
			require.NoError(t, err)

			warned := false
			for _, entry := range hook.AllEntries() {
				if entry.Level == logrus.WarnLevel && strings.HasPrefix(entry.Message, "Nenhum pedido com status pendente") {
					warned = true
				}
			}
			assert.Equal(t, tt.expectWarning, warned)
		})
	}
}

func TestService_ReconcileOversold(t *testing.T) {
	store := newTestStore()
	store.AddSection("Pedidos_Pendentes", "Pedidos", []string{"product", "weight", "status"},
		[]any{"C", "25", "PENDENTE"},
	)
	service := newTestService(t, store, []string{"PENDENTE"})

	report, err := service.Reconcile(context.Background())
	require.NoError(t, err)

	// o saldo não é limitado a zero
	assert.Equal(t, -5.0, netByCut(report)["C"])
}

func TestService_ReconcileFailFast(t *testing.T) {
	storeErr := domain.NewStoreUnavailableError("Estoque_Fisico", "Estoque", errors.New("timeout"))

	tests := []struct {
		name  string
		setup func(production *mocks.MockProductionRepository, inventory *mocks.MockInventoryRepository, orders *mocks.MockOrdersRepository)
	}{
		{
			name: "Falha no livro de produção interrompe antes das outras leituras",
			setup: func(production *mocks.MockProductionRepository, inventory *mocks.MockInventoryRepository, orders *mocks.MockOrdersRepository) {
				production.EXPECT().ListProduction(gomock.Any(), gomock.Any()).Return(nil, storeErr)
				inventory.EXPECT().ListInventory(gomock.Any(), gomock.Any()).Times(0)
				orders.EXPECT().ListOrders(gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name: "Falha no estoque interrompe antes dos pedidos",
			setup: func(production *mocks.MockProductionRepository, inventory *mocks.MockInventoryRepository, orders *mocks.MockOrdersRepository) {
				production.EXPECT().ListProduction(gomock.Any(), gomock.Any()).Return([]domain.ProductionRow{}, nil)
				inventory.EXPECT().ListInventory(gomock.Any(), gomock.Any()).Return(nil, storeErr)
				orders.EXPECT().ListOrders(gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name: "Falha nos pedidos",
			setup: func(production *mocks.MockProductionRepository, inventory *mocks.MockInventoryRepository, orders *mocks.MockOrdersRepository) {
				production.EXPECT().ListProduction(gomock.Any(), gomock.Any()).Return([]domain.ProductionRow{}, nil)
				inventory.EXPECT().ListInventory(gomock.Any(), gomock.Any()).Return([]domain.InventoryRow{}, nil)
				orders.EXPECT().ListOrders(gomock.Any(), gomock.Any()).Return(nil, storeErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			production := mocks.NewMockProductionRepository(ctrl)
			inventory := mocks.NewMockInventoryRepository(ctrl)
			orders := mocks.NewMockOrdersRepository(ctrl)
			tt.setup(production, inventory, orders)

			mapper := NewMapper(testCuts, nil)
			service := NewService(production, inventory, orders, mapper, NewBalanceCalculator(mapper.Cuts(), nil), nil)

			report, err := service.Reconcile(context.Background())
			assert.Nil(t, report)
			assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
		})
	}
}
