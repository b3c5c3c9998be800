package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type txKey struct{}

// Коды ошибок PostgreSQL, после которых транзакцию можно повторить
const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// DefaultSerializableRetries сколько раз повторять транзакцию при конфликте сериализации
const DefaultSerializableRetries = 3

// TransactionManager управляет транзакциями, передавая *sql.Tx через context
type TransactionManager struct {
	db       TxBeginner
	observer Observer
	logger   Logger
	retries  int
}

// NewTransactionManager создает менеджер транзакций
// observer и logger могут быть nil
func NewTransactionManager(db TxBeginner, observer Observer, logger Logger) *TransactionManager {
	return &TransactionManager{
		db:       db,
		observer: observer,
		logger:   logger,
		retries:  DefaultSerializableRetries,
	}
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, "read_committed", &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, "read_only", &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции
// При ошибке сериализации (40001) или взаимной блокировке (40P01) транзакция повторяется
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	// Повтор возможен только в собственной транзакции, внешняя после ошибки уже прервана
	if IsInTransaction(ctx) {
		return fn(ctx)
	}

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= m.retries; attempt++ {
		err = m.run(ctx, "serializable", opts, fn)
		if !isSerializationFailure(err) {
			return err
		}
		m.observe("serializable", "retry")
		if m.logger != nil {
			m.logger.Warn("DoSerializable: serialization failure, attempt=%d: %v", attempt+1, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("%w: %w", ErrSerializationRetriesExceeded, err)
}

func (m *TransactionManager) run(ctx context.Context, kind string, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			m.observe(kind, "rollback")
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		m.observe(kind, "rollback")
		return err
	}

	if err = tx.Commit(); err != nil {
		m.observe(kind, "rollback")
		if isSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	m.observe(kind, "commit")
	return nil
}

func (m *TransactionManager) observe(kind, result string) {
	if m.observer != nil {
		m.observer.ObserveTransaction(kind, result)
	}
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// IsInTransaction сообщает, выполняется ли код внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == serializationFailure || pqErr.Code == deadlockDetected
	}
	return false
}
