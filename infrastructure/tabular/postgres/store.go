// Package postgres implementa o armazenamento tabular sobre o PostgreSQL.
// Cada aba é um registro em tabular_section com o cabeçalho; as linhas ficam em tabular_row como JSON.
package postgres

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/desossa-api/infrastructure/database/postgres"
	"github.com/vfg2006/desossa-api/infrastructure/tabular"
	"github.com/vfg2006/desossa-api/internal/domain"
)

const (
	sectionTable = "tabular_section"
	rowTable     = "tabular_row"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Schema cria as tabelas usadas pelo armazenamento
const Schema = `
CREATE TABLE IF NOT EXISTS tabular_section (
	table_name   TEXT   NOT NULL,
	section_name TEXT   NOT NULL,
	header       TEXT[] NOT NULL,
	PRIMARY KEY (table_name, section_name)
);

CREATE TABLE IF NOT EXISTS tabular_row (
	id           BIGSERIAL   PRIMARY KEY,
	table_name   TEXT        NOT NULL,
	section_name TEXT        NOT NULL,
	cells        JSONB       NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (table_name, section_name) REFERENCES tabular_section (table_name, section_name)
);
`

type Store struct {
	conn postgres.Queryer
}

func NewStore(conn postgres.Queryer) *Store {
	return &Store{conn: conn}
}

// Verify interface compliance
var _ tabular.Store = (*Store)(nil)

func (s *Store) OpenTable(ctx context.Context, name string) (tabular.Table, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(sectionTable).
		Where(squirrel.Eq{"table_name": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	var count int
	if err := s.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return nil, domain.NewStoreUnavailableError(name, "", errors.Wrap(err, "erro ao consultar tabela"))
	}

	if count == 0 {
		return nil, domain.NewTableNotFoundError(name)
	}

	return &table{store: s, name: name}, nil
}

// CreateSection registra uma aba com o cabeçalho informado, se ainda não existir
func (s *Store) CreateSection(ctx context.Context, table, section string, header []string) error {
	query, args, err := squirrel.
		Insert(sectionTable).
		Columns("table_name", "section_name", "header").
		Values(table, section, pq.Array(header)).
		Suffix("ON CONFLICT (table_name, section_name) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := s.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "erro ao criar aba %s/%s", table, section)
	}
	return nil
}

type table struct {
	store *Store
	name  string
}

func (t *table) Name() string {
	return t.name
}

func (t *table) OpenSection(ctx context.Context, name string) (tabular.Section, error) {
	sec := &section{store: t.store, table: t.name, name: name}
	if _, err := sec.Header(ctx); err != nil {
		return nil, err
	}
	return sec, nil
}

type section struct {
	store *Store
	table string
	name  string
}

func (s *section) Name() string {
	return s.name
}

func (s *section) Header(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("header").
		From(sectionTable).
		Where(squirrel.Eq{"table_name": s.table, "section_name": s.name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	var header []string
	if err := s.store.conn.QueryRow(ctx, query, args...).Scan(pq.Array(&header)); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewSectionNotFoundError(s.table, s.name)
		}
		return nil, domain.NewStoreUnavailableError(s.table, s.name, errors.Wrap(err, "erro ao ler cabeçalho"))
	}
	return header, nil
}

func (s *section) ReadRows(ctx context.Context) ([]domain.RawTableRow, error) {
	header, err := s.Header(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("cells").
		From(rowTable).
		Where(squirrel.Eq{"table_name": s.table, "section_name": s.name}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := s.store.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStoreUnavailableError(s.table, s.name, errors.Wrap(err, "erro ao executar a query"))
	}
	defer rows.Close()

	grid := [][]any{headerLine(header)}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, domain.NewStoreUnavailableError(s.table, s.name, errors.Wrap(err, "erro ao escanear linha"))
		}

		line, err := decodeCells(raw)
		if err != nil {
			return nil, domain.NewStoreUnavailableError(s.table, s.name, err)
		}
		grid = append(grid, line)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreUnavailableError(s.table, s.name, errors.Wrap(err, "erro durante a iteração de linhas"))
	}

	_, result := tabular.RowsFromGrid(grid)
	return result, nil
}

func (s *section) AppendRow(ctx context.Context, values []any) error {
	cells, err := json.Marshal(values)
	if err != nil {
		return domain.NewPersistenceError(s.table, s.name, errors.Wrap(err, "erro ao serializar linha"))
	}

	query, args, err := squirrel.
		Insert(rowTable).
		Columns("table_name", "section_name", "cells").
		Values(s.table, s.name, string(cells)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return domain.NewPersistenceError(s.table, s.name, errors.Wrap(err, "erro ao construir a query"))
	}

	if _, err := s.store.conn.Exec(ctx, query, args...); err != nil {
		return domain.NewPersistenceError(s.table, s.name, errors.Wrap(err, "erro ao executar inserção"))
	}
	return nil
}

func headerLine(header []string) []any {
	line := make([]any, len(header))
	for i, h := range header {
		line[i] = h
	}
	return line
}

// decodeCells lê a linha gravada como array JSON
func decodeCells(raw []byte) ([]any, error) {
	var line []any
	if err := json.Unmarshal(raw, &line); err != nil {
		return nil, errors.Wrap(err, "linha com JSON inválido")
	}
	return line, nil
}
