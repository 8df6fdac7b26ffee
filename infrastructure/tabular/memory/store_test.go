package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/desossa-api/internal/domain"
)

func TestStore_AppendAndRead(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	store.AddSection("Pedidos_Pendentes", "Pedidos", []string{"product", "weight", "status"},
		[]any{"Pernil s/ osso", "10,5", "PENDENTE"},
	)

	table, err := store.OpenTable(ctx, "Pedidos_Pendentes")
	require.NoError(t, err)
	assert.Equal(t, "Pedidos_Pendentes", table.Name())

	section, err := table.OpenSection(ctx, "Pedidos")
	require.NoError(t, err)

	header, err := section.Header(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"product", "weight", "status"}, header)

	require.NoError(t, section.AppendRow(ctx, []any{"Lombo", 4.0, "PENDENTE"}))

	rows, err := section.ReadRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Pernil s/ osso", rows[0]["product"])
	assert.Equal(t, "Lombo", rows[1]["product"])
	assert.Equal(t, 4.0, rows[1]["weight"])
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.OpenTable(ctx, "Sistema_Desossa")
	assert.True(t, errors.Is(err, domain.ErrTableNotFound))

	store.AddSection("Sistema_Desossa", "Rendimento", []string{"date"})
	table, err := store.OpenTable(ctx, "Sistema_Desossa")
	require.NoError(t, err)

	_, err = table.OpenSection(ctx, "De_Para")
	assert.True(t, errors.Is(err, domain.ErrSectionNotFound))
}

func TestStore_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	store.AddSection("Sistema_Desossa", "Rendimento", []string{"date", "total_weight"})

	table, err := store.OpenTable(ctx, "Sistema_Desossa")
	require.NoError(t, err)
	section, err := table.OpenSection(ctx, "Rendimento")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, section.AppendRow(ctx, []any{"2024-03-15 08:00:00", float64(i)}))
		}(i)
	}
	wg.Wait()

	rows, err := section.ReadRows(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 20)
}
