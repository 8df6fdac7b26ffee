// Package xlsx implementa o armazenamento tabular sobre pastas de trabalho .xlsx locais.
// Cada tabela é um arquivo <nome>.xlsx no diretório configurado e cada aba é uma planilha.
package xlsx

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/desossa-api/infrastructure/tabular"
	"github.com/vfg2006/desossa-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Store acessa arquivos .xlsx em um diretório
type Store struct {
	dir string
	// Serializa leituras e gravações: o arquivo inteiro é regravado a cada linha
	mu sync.Mutex
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Verify interface compliance
var _ tabular.Store = (*Store)(nil)

func (s *Store) path(table string) string {
	return filepath.Join(s.dir, table+".xlsx")
}

func (s *Store) OpenTable(_ context.Context, name string) (tabular.Table, error) {
	if _, err := os.Stat(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewTableNotFoundError(name)
		}
		return nil, domain.NewStoreUnavailableError(name, "", err)
	}
	return &table{store: s, name: name}, nil
}

// open abre o arquivo e garante que a aba exista
func (s *Store) open(table, sheet string) (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path(table))
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return nil, domain.NewTableNotFoundError(table)
		}
		return nil, domain.NewStoreUnavailableError(table, sheet, errors.Wrap(err, "erro ao abrir pasta de trabalho"))
	}

	if sheet == "" {
		return f, nil
	}

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx == -1 {
		_ = f.Close()
		return nil, domain.NewSectionNotFoundError(table, sheet)
	}
	return f, nil
}

type table struct {
	store *Store
	name  string
}

func (t *table) Name() string {
	return t.name
}

func (t *table) OpenSection(_ context.Context, name string) (tabular.Section, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	f, err := t.store.open(t.name, name)
	if err != nil {
		return nil, err
	}
	_ = f.Close()

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

func (s *section) grid() ([][]any, error) {
	f, err := s.store.open(s.table, s.name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(s.name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.NewStoreUnavailableError(s.table, s.name, errors.Wrap(err, "erro ao ler linhas"))
	}

	grid := make([][]any, 0, len(rows))
	for _, r := range rows {
		line := make([]any, len(r))
		for i, cell := range r {
			line[i] = cell
		}
		grid = append(grid, line)
	}
	return grid, nil
}

func (s *section) Header(_ context.Context) ([]string, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	grid, err := s.grid()
	if err != nil {
		return nil, err
	}
	header, _ := tabular.RowsFromGrid(grid)
	return header, nil
}

func (s *section) ReadRows(_ context.Context) ([]domain.RawTableRow, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	grid, err := s.grid()
	if err != nil {
		return nil, err
	}
	_, rows := tabular.RowsFromGrid(grid)
	return rows, nil
}

func (s *section) AppendRow(_ context.Context, values []any) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	f, err := s.store.open(s.table, s.name)
	if err != nil {
		return domain.NewPersistenceError(s.table, s.name, err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.name)
	if err != nil {
		return domain.NewPersistenceError(s.table, s.name, errors.Wrap(err, "erro ao localizar a última linha"))
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return domain.NewPersistenceError(s.table, s.name, err)
	}

	if err := f.SetSheetRow(s.name, cell, &values); err != nil {
		return domain.NewPersistenceError(s.table, s.name, errors.Wrap(err, "erro ao escrever linha"))
	}

	if err := f.Save(); err != nil {
		return domain.NewPersistenceError(s.table, s.name, errors.Wrap(err, "erro ao salvar pasta de trabalho"))
	}

	logrus.WithFields(logrus.Fields{
		"table":   s.table,
		"section": s.name,
		"cell":    cell,
	}).Debug("Linha gravada na pasta de trabalho")

	return nil
}

// CreateWorkbook cria uma pasta de trabalho com as abas e cabeçalhos informados.
// Usado para preparar o diretório local em desenvolvimento.
func CreateWorkbook(path string, sections map[string][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	const defaultSheet = "Sheet1"
	first := true
	for _, name := range names {
		header := sections[name]
		if first {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return err
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		values := make([]any, len(header))
		for i, h := range header {
			values[i] = h
		}
		if err := f.SetSheetRow(name, "A1", &values); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
