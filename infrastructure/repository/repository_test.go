package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/desossa-api/infrastructure/tabular/memory"
	"github.com/vfg2006/desossa-api/internal/domain"
)

const (
	ledgerTable   = "Sistema_Desossa"
	ledgerSection = "Rendimento"
)

var testCuts = []string{"Pernil", "Lombo"}

func newLedgerStore(header []string, rows ...[]any) *memory.Store {
	store := memory.NewStore()
	store.AddSection(ledgerTable, ledgerSection, header, rows...)
	return store
}

func TestYieldLedgerRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	store := newLedgerStore(LedgerHeader(testCuts))
	repo := NewYieldLedgerRepository(store, ledgerTable, ledgerSection, testCuts)

	record := domain.YieldRecord{
		Date:        time.Date(2024, 3, 15, 8, 30, 0, 0, time.Local),
		Species:     domain.SpeciesPork,
		TotalWeight: 100,
		Cuts: []domain.ProjectionRow{
			{Cut: "Pernil", Weight: 26},
			{Cut: "Lombo", Weight: 13},
		},
	}
	require.NoError(t, repo.AppendRecord(ctx, record))

	records, err := repo.ListRecords(ctx, domain.NewDiagnostics())
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.True(t, record.Date.Equal(got.Date))
	assert.Equal(t, 100.0, got.TotalWeight)
	assert.Equal(t, []domain.ProjectionRow{
		{Cut: "Pernil", Weight: 26},
		{Cut: "Lombo", Weight: 13},
	}, got.Cuts)
}

func TestYieldLedgerRepository_AppendErrors(t *testing.T) {
	ctx := context.Background()
	record := domain.YieldRecord{
		Date:        time.Now(),
		TotalWeight: 100,
		Cuts: []domain.ProjectionRow{
			{Cut: "Pernil", Weight: 26},
			{Cut: "Lombo", Weight: 13},
		},
	}

	tests := []struct {
		name  string
		store *memory.Store
	}{
		{
			name:  "Cabeçalho com colunas em outra ordem",
			store: newLedgerStore([]string{"date", "total_weight", "Lombo", "Pernil"}),
		},
		{
			name:  "Cabeçalho com coluna a menos",
			store: newLedgerStore([]string{"date", "total_weight", "Pernil"}),
		},
		{
			name:  "Tabela inexistente",
			store: memory.NewStore(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewYieldLedgerRepository(tt.store, ledgerTable, ledgerSection, testCuts)

			err := repo.AppendRecord(ctx, record)
			assert.True(t, errors.Is(err, domain.ErrPersistence), "erro inesperado: %v", err)

			// nenhuma linha é gravada quando a gravação falha
			if _, openErr := tt.store.OpenTable(ctx, ledgerTable); openErr == nil {
				records, listErr := repo.ListRecords(ctx, nil)
				require.NoError(t, listErr)
				assert.Empty(t, records)
			}
		})
	}
}

func TestSameHeader(t *testing.T) {
	expected := []string{"date", "total_weight", "Pernil"}

	assert.True(t, sameHeader([]string{" DATE ", "Total_Weight", "pernil"}, expected))
	assert.True(t, sameHeader([]string{"date", "total_weight", "Pernil", "", " "}, expected))
	assert.False(t, sameHeader([]string{"date", "total_weight"}, expected))
	assert.False(t, sameHeader([]string{"date", "total_weight", "Lombo"}, expected))
}

func TestProductionRepository_ListProduction(t *testing.T) {
	ctx := context.Background()
	store := newLedgerStore(
		[]string{"date", "total_weight", "pernil", "LOMBO", "Picanha"},
		[]any{"2024-03-15 08:00:00", "100", "26", "13", "5"},
		[]any{},
		[]any{"2024-03-16 08:00:00", "200", "abc", 26.5, "1"},
	)
	repo := NewProductionRepository(store, ledgerTable, ledgerSection, testCuts)
	diag := domain.NewDiagnostics()

	rows, err := repo.ListProduction(ctx, diag)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Row)
	assert.Equal(t, map[string]float64{"Pernil": 26, "Lombo": 13}, rows[0].Cuts)

	// a linha em branco não conta, mas a numeração segue a planilha
	assert.Equal(t, 4, rows[1].Row)
	assert.Equal(t, 200.0, rows[1].TotalWeight)
	assert.Equal(t, map[string]float64{"Pernil": 0, "Lombo": 26.5}, rows[1].Cuts)

	assert.Equal(t, []string{"Picanha"}, diag.UnmappedColumns)
	require.Equal(t, 1, diag.CoercedCount())
	assert.Equal(t, domain.CoercedCell{
		Source: domain.SourceProduction,
		Row:    4,
		Column: "pernil",
		Raw:    "abc",
	}, diag.CoercedCells[0])
}

func TestProductionRepository_RepeatedHeader(t *testing.T) {
	ctx := context.Background()
	store := newLedgerStore(
		[]string{"date", "total_weight", "Pernil", "Pernil ", "Lombo"},
		[]any{"2024-03-15 08:00:00", "100", 50.0, 1.0, 13.0},
	)
	repo := NewProductionRepository(store, ledgerTable, ledgerSection, testCuts)
	diag := domain.NewDiagnostics()

	rows, err := repo.ListProduction(ctx, diag)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// a coluna repetida não soma de novo a célula da primeira
	assert.Equal(t, map[string]float64{"Pernil": 50, "Lombo": 13}, rows[0].Cuts)
	assert.Equal(t, []string{"Pernil"}, diag.UnmappedColumns)
	assert.Equal(t, 0, diag.CoercedCount())
}

func TestInventoryRepository_ListInventory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.AddSection("Estoque_Fisico", "Estoque", []string{"material", "quantidade_kg"},
		[]any{" Pernil ", "12,50"},
		[]any{"Lombo", ""},
		[]any{"Paleta", 7},
	)
	repo := NewInventoryRepository(store, "Estoque_Fisico", "Estoque", "material", "quantidade_kg")
	diag := domain.NewDiagnostics()

	rows, err := repo.ListInventory(ctx, diag)
	require.NoError(t, err)

	assert.Equal(t, []domain.InventoryRow{
		{Row: 2, Material: "Pernil", Quantity: 12.5},
		{Row: 3, Material: "Lombo", Quantity: 0},
		{Row: 4, Material: "Paleta", Quantity: 7},
	}, rows)
	assert.Equal(t, 1, diag.CoercedBySource[domain.SourceInventory])
}

func TestInventoryRepository_MissingSection(t *testing.T) {
	store := memory.NewStore()
	store.AddSection("Estoque_Fisico", "Outra", []string{"material"})
	repo := NewInventoryRepository(store, "Estoque_Fisico", "Estoque", "material", "quantidade_kg")

	_, err := repo.ListInventory(context.Background(), domain.NewDiagnostics())
	assert.True(t, errors.Is(err, domain.ErrSectionNotFound))
}

func TestOrdersRepository_ListOrders(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.AddSection("Pedidos_Pendentes", "Pedidos", []string{"product", "weight", "status"},
		[]any{"Pernil s/ osso", "10", "PENDENTE"},
		[]any{"Lombo", "4,5", " entregue "},
	)
	repo := NewOrdersRepository(store, "Pedidos_Pendentes", "Pedidos", OrdersColumns{
		Product: "product",
		Weight:  "weight",
		Status:  "status",
	})

	rows, err := repo.ListOrders(ctx, domain.NewDiagnostics())
	require.NoError(t, err)
	assert.Equal(t, []domain.OrderRow{
		{Row: 2, Product: "Pernil s/ osso", Weight: 10, Status: "PENDENTE"},
		{Row: 3, Product: "Lombo", Weight: 4.5, Status: "entregue"},
	}, rows)
}

func TestMappingRepository_ListMappings(t *testing.T) {
	store := memory.NewStore()
	store.AddSection("Pedidos_Pendentes", "De_Para", []string{"descricao_produto", "corte"},
		[]any{"Pernil s/ osso", "Pernil"},
		[]any{"", "Lombo"},
		[]any{"Bisteca", ""},
		[]any{" Carré ", " Lombo "},
	)
	repo := NewMappingRepository(store, "Pedidos_Pendentes", "De_Para", "descricao_produto", "corte")

	entries, err := repo.ListMappings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ProductMappingEntry{
		{ProductDescription: "Pernil s/ osso", CanonicalCut: "Pernil"},
		{ProductDescription: "Carré", CanonicalCut: "Lombo"},
	}, entries)
}
