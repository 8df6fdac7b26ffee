// Package tabular define o contrato do armazenamento tabular externo (planilhas nomeadas com abas)
package tabular

//go:generate mockgen -source=tabular.go -destination=mocks/tabular.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/vfg2006/desossa-api/internal/domain"
)

// Store abre tabelas pelo nome.
// Falha com domain.ErrTableNotFound quando a tabela não existe.
type Store interface {
	OpenTable(ctx context.Context, name string) (Table, error)
}

// Table abre abas pelo nome.
// Falha com domain.ErrSectionNotFound quando a aba não existe.
type Table interface {
	Name() string
	OpenSection(ctx context.Context, name string) (Section, error)
}

// Section é uma aba: a primeira linha é o cabeçalho e as demais são dados
type Section interface {
	Name() string
	Header(ctx context.Context) ([]string, error)
	ReadRows(ctx context.Context) ([]domain.RawTableRow, error)
	// AppendRow grava uma linha ao final, na ordem do cabeçalho.
	// Falha com domain.ErrPersistence e nunca sobrescreve linhas anteriores.
	AppendRow(ctx context.Context, values []any) error
}

// OpenSection abre tabela e aba em um único passo
func OpenSection(ctx context.Context, store Store, table, section string) (Section, error) {
	t, err := store.OpenTable(ctx, table)
	if err != nil {
		return nil, err
	}
	return t.OpenSection(ctx, section)
}

// RowsFromGrid converte uma grade (cabeçalho + linhas) em linhas indexadas pelo cabeçalho.
// Colunas sem cabeçalho são ignoradas; células ausentes ficam fora do mapa.
// Linhas em branco são mantidas para que a posição corresponda à linha da planilha.
func RowsFromGrid(grid [][]any) (header []string, rows []domain.RawTableRow) {
	if len(grid) == 0 {
		return []string{}, []domain.RawTableRow{}
	}

	header = make([]string, len(grid[0]))
	for i, cell := range grid[0] {
		if cell != nil {
			header[i] = strings.TrimSpace(fmt.Sprint(cell))
		}
	}

	// em cabeçalho repetido vale a primeira coluna
	repeated := make([]bool, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		repeated[i] = seen[h]
		seen[h] = true
	}

	rows = make([]domain.RawTableRow, 0, len(grid)-1)
	for _, line := range grid[1:] {
		row := make(domain.RawTableRow, len(header))
		for i, cell := range line {
			if i >= len(header) || header[i] == "" || repeated[i] {
				continue
			}
			row[header[i]] = cell
		}
		rows = append(rows, row)
	}

	return header, rows
}
