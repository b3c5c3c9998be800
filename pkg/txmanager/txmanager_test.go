package txmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, want: true},
		{name: "wrapped serialization failure", err: fmt.Errorf("wrap: %w", &pq.Error{Code: "40001"}), want: true},
		{name: "deadlock detected", err: &pq.Error{Code: "40P01"}, want: true},
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSerializationFailure(tt.err))
		})
	}
}

func TestIsInTransaction_EmptyContext(t *testing.T) {
	assert.False(t, IsInTransaction(context.Background()))
}

func TestDoSerializable_RetriesLayeredSerializationFailure(t *testing.T) {
	errExec := errors.New("repo: failed to execute query")
	errInternal := errors.New("service: internal error")
	layered := func() error {
		repoErr := fmt.Errorf("%w: LockDays - lock rows: %w", errExec, &pq.Error{Code: "40001"})
		return fmt.Errorf("%w: Reserve - repository error: %w", errInternal, repoErr)
	}

	t.Run("succeeds after retries", func(t *testing.T) {
		conn := &countingConnector{}
		m := NewTransactionManager(sql.OpenDB(conn), nil, nil)

		attempts := 0
		err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
			attempts++
			if attempts < 3 {
				return layered()
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, int32(1), conn.commits.Load())
		assert.Equal(t, int32(2), conn.rollbacks.Load())
	})

	t.Run("gives up after retries", func(t *testing.T) {
		m := NewTransactionManager(sql.OpenDB(&countingConnector{}), nil, nil)

		attempts := 0
		err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
			attempts++
			return layered()
		})

		require.ErrorIs(t, err, ErrSerializationRetriesExceeded)
		assert.ErrorIs(t, err, errInternal)
		assert.Equal(t, DefaultSerializableRetries+1, attempts)
	})

	t.Run("nested call is not retried", func(t *testing.T) {
		m := NewTransactionManager(sql.OpenDB(&countingConnector{}), nil, nil)

		attempts := 0
		err := m.Do(context.Background(), func(txCtx context.Context) error {
			return m.DoSerializable(txCtx, func(ctx context.Context) error {
				attempts++
				return layered()
			})
		})

		require.Error(t, err)
		assert.True(t, isSerializationFailure(err))
		assert.Equal(t, 1, attempts)
	})
}

// countingConnector драйвер без запросов, считает фиксации и откаты
type countingConnector struct {
	commits   atomic.Int32
	rollbacks atomic.Int32
}

func (c *countingConnector) Connect(context.Context) (driver.Conn, error) {
	return &countingConn{c: c}, nil
}
func (c *countingConnector) Driver() driver.Driver { return countingDriver{c: c} }

type countingDriver struct {
	c *countingConnector
}

func (d countingDriver) Open(string) (driver.Conn, error) { return &countingConn{c: d.c}, nil }

type countingConn struct {
	c *countingConnector
}

func (c *countingConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c *countingConn) Close() error                        { return nil }
func (c *countingConn) Begin() (driver.Tx, error)           { return countingTx{c: c.c}, nil }

func (c *countingConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return countingTx{c: c.c}, nil
}

type countingTx struct {
	c *countingConnector
}

func (tx countingTx) Commit() error   { tx.c.commits.Add(1); return nil }
func (tx countingTx) Rollback() error { tx.c.rollbacks.Add(1); return nil }
