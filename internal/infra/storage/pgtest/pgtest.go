// Package pgtest поднимает схему для интеграционных тестов репозиториев PostgreSQL.
// Без переменной HOTEL_TEST_DATABASE_URL тесты пропускаются.
package pgtest

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/migrations"
)

// EnvDSN переменная окружения со строкой подключения к тестовой базе
const EnvDSN = "HOTEL_TEST_DATABASE_URL"

const lockID int64 = 4815162342

// Open подключается к тестовой базе, применяет миграции и очищает таблицы
// Соединение с advisory lock держится до конца теста, чтобы пакеты не мешали друг другу
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("skipping PostgreSQL integration test: %s is not set", EnvDSN)
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Skipf("skipping PostgreSQL integration test: %v", err)
	}

	conn, err := db.Conn(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockID)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
		_ = conn.Close()
	})

	require.NoError(t, migrations.Up(db))

	_, err = db.ExecContext(ctx, `TRUNCATE reminder_log, external_holds, holiday_overrides,
		payment_details, availability_days, bookings, room_types RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

// SeedRoomType создает тип номера с заданной вместимостью
func SeedRoomType(t *testing.T, db *sql.DB, id int64, totalRooms int) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO room_types (id, name, total_rooms, max_guests, weekday_rate, weekend_rate)
		VALUES ($1, $2, $3, 2, $4, $5)`,
		id, "Double", totalRooms, decimal.NewFromInt(2800), decimal.NewFromInt(3600))
	require.NoError(t, err)
}

// SeedBooking создает бронирование в статусе pending и возвращает его id
func SeedBooking(t *testing.T, db *sql.DB, roomTypeID int64) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(`INSERT INTO bookings
		(room_type_id, guest_name, guest_email, check_in, check_out, guest_count, total_price, status)
		VALUES ($1, 'Chen Mei', 'mei@example.com', '2026-01-15', '2026-01-17', 2, 6400, 'pending')
		RETURNING id`, roomTypeID).Scan(&id)
	require.NoError(t, err)
	return id
}
