// Package memory implementa o armazenamento tabular em memória, usado em desenvolvimento e testes
package memory

import (
	"context"
	"sync"

	"github.com/vfg2006/desossa-api/infrastructure/tabular"
	"github.com/vfg2006/desossa-api/internal/domain"
)

// Store mantém as tabelas em memória
type Store struct {
	mu     sync.RWMutex
	tables map[string]map[string]*sheet
}

type sheet struct {
	header []string
	rows   [][]any
}

// NewStore cria um armazenamento vazio
func NewStore() *Store {
	return &Store{
		tables: make(map[string]map[string]*sheet),
	}
}

// Verify interface compliance
var _ tabular.Store = (*Store)(nil)

// AddSection cria (ou substitui) uma aba com cabeçalho e linhas iniciais
func (s *Store) AddSection(table, section string, header []string, rows ...[]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[table]; !ok {
		s.tables[table] = make(map[string]*sheet)
	}

	copied := make([][]any, 0, len(rows))
	for _, r := range rows {
		copied = append(copied, append([]any(nil), r...))
	}

	s.tables[table][section] = &sheet{
		header: append([]string(nil), header...),
		rows:   copied,
	}
}

func (s *Store) OpenTable(_ context.Context, name string) (tabular.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.tables[name]; !ok {
		return nil, domain.NewTableNotFoundError(name)
	}
	return &table{store: s, name: name}, nil
}

type table struct {
	store *Store
	name  string
}

func (t *table) Name() string {
	return t.name
}

func (t *table) OpenSection(_ context.Context, name string) (tabular.Section, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	if _, ok := t.store.tables[t.name][name]; !ok {
		return nil, domain.NewSectionNotFoundError(t.name, name)
	}
	return &section{store: t.store, table: t.name, name: name}, nil
}

type section struct {
	store *Store
	table string
	name  string
}

func (s *section) Name() string {
	return s.name
}

func (s *section) get() (*sheet, error) {
	sh, ok := s.store.tables[s.table][s.name]
	if !ok {
		return nil, domain.NewSectionNotFoundError(s.table, s.name)
	}
	return sh, nil
}

func (s *section) Header(_ context.Context) ([]string, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	sh, err := s.get()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), sh.header...), nil
}

func (s *section) ReadRows(_ context.Context) ([]domain.RawTableRow, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	sh, err := s.get()
	if err != nil {
		return nil, err
	}

	grid := make([][]any, 0, len(sh.rows)+1)
	head := make([]any, len(sh.header))
	for i, h := range sh.header {
		head[i] = h
	}
	grid = append(grid, head)
	grid = append(grid, sh.rows...)

	_, rows := tabular.RowsFromGrid(grid)
	return rows, nil
}

func (s *section) AppendRow(_ context.Context, values []any) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	sh, ok := s.store.tables[s.table][s.name]
	if !ok {
		return domain.NewPersistenceError(s.table, s.name, domain.ErrSectionNotFound)
	}

	sh.rows = append(sh.rows, append([]any(nil), values...))
	return nil
}
