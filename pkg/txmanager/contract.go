package txmanager

import (
	"context"
	"database/sql"
)

// DBExecutor общий интерфейс для *sql.DB и *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxBeginner умеет открывать транзакции (*sql.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Observer получает результат каждой транзакции (commit, rollback, retry)
type Observer interface {
	ObserveTransaction(kind string, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
