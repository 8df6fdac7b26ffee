package postgres

import (
	"context"
	"database/sql"
)

// Queryer é o subconjunto da conexão usado pelos repositórios; facilita trocar a conexão por uma transação
type Queryer interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row
}

// txQueryer adapta *sql.Tx à interface Queryer
type txQueryer struct {
	tx *sql.Tx
}

// TxQueryer permite usar os repositórios dentro de RunInTransaction
func TxQueryer(tx *sql.Tx) Queryer {
	return txQueryer{tx: tx}
}

func (q txQueryer) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.tx.ExecContext(ctx, query, args...)
}

func (q txQueryer) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.tx.QueryContext(ctx, query, args...)
}

func (q txQueryer) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.tx.QueryRowContext(ctx, query, args...)
}

// Verify interface compliance
var (
	_ Queryer = (*Connection)(nil)
	_ Conn    = (*Connection)(nil)
)
