package availability

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-HotelService/pkg/txmanager"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

const (
	ensureDaysQuery = `INSERT INTO availability_days (room_type_id, date)
SELECT $1, d FROM unnest($2::date[]) AS d
ON CONFLICT (room_type_id, date) DO NOTHING`

	lockDaysQuery = `SELECT room_type_id, date, committed, external_hold
FROM availability_days
WHERE room_type_id = $1 AND date = ANY($2::date[])
ORDER BY date
FOR UPDATE`

	addCommittedQuery = `INSERT INTO availability_days (room_type_id, date, committed)
SELECT $1, d, GREATEST($3, 0) FROM unnest($2::date[]) AS d
ON CONFLICT (room_type_id, date) DO UPDATE
SET committed = GREATEST(availability_days.committed + $3, 0)`

	addExternalHoldQuery = `INSERT INTO availability_days (room_type_id, date, external_hold)
SELECT $1, d, GREATEST($3, 0) FROM unnest($2::date[]) AS d
ON CONFLICT (room_type_id, date) DO UPDATE
SET external_hold = GREATEST(availability_days.external_hold + $3, 0)`
)

// Repository дневные счетчики инвентаря
// Вместимость не хранится в строке и заполняется сервисом из типа номера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетчиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockDays создает недостающие строки и блокирует их до конца транзакции
// Строки блокируются в порядке дат, поэтому пересекающиеся брони не взаимоблокируются
func (r *Repository) LockDays(ctx context.Context, roomTypeID int64, dates []types.Date) ([]*domain.AvailabilityDay, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	sorted := append([]types.Date(nil), dates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	arg := dateArray(sorted)

	if _, err := executor.ExecContext(ctx, ensureDaysQuery, roomTypeID, arg); err != nil {
		return nil, fmt.Errorf("%w: LockDays - ensure rows: %w", ErrExecQuery, err)
	}

	rows, err := executor.QueryContext(ctx, lockDaysQuery, roomTypeID, arg)
	if err != nil {
		return nil, fmt.Errorf("%w: LockDays - lock rows: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	byDate := make(map[types.Date]*domain.AvailabilityDay, len(sorted))
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: LockDays - scan row: %w", ErrScanRow, err)
		}
		byDate[day.Date] = day
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: LockDays - rows error: %w", ErrScanRow, err)
	}

	result := make([]*domain.AvailabilityDay, 0, len(sorted))
	for _, d := range sorted {
		day, ok := byDate[d]
		if !ok {
			return nil, fmt.Errorf("%w: LockDays - row for %s is missing", ErrScanRow, d)
		}
		copied := *day
		result = append(result, &copied)
	}

	return result, nil
}

// ListDays возвращает существующие строки в диапазоне [from, to)
func (r *Repository) ListDays(ctx context.Context, roomTypeID int64, from, to types.Date) ([]*domain.AvailabilityDay, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("room_type_id", "date", "committed", "external_hold").
		From("availability_days").
		Where(squirrel.Eq{"room_type_id": roomTypeID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDays - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDays - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.AvailabilityDay, 0)
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDays - scan row: %w", ErrScanRow, err)
		}
		result = append(result, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDays - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// AddCommitted изменяет committed на delta, не опускаясь ниже нуля
func (r *Repository) AddCommitted(ctx context.Context, roomTypeID int64, dates []types.Date, delta int) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, addCommittedQuery, roomTypeID, dateArray(dates), delta); err != nil {
		return fmt.Errorf("%w: AddCommitted - execute upsert: %w", ErrExecQuery, err)
	}
	return nil
}

// AddExternalHold изменяет external_hold на delta, не опускаясь ниже нуля
func (r *Repository) AddExternalHold(ctx context.Context, roomTypeID int64, dates []types.Date, delta int) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, addExternalHoldQuery, roomTypeID, dateArray(dates), delta); err != nil {
		return fmt.Errorf("%w: AddExternalHold - execute upsert: %w", ErrExecQuery, err)
	}
	return nil
}

func dateArray(dates []types.Date) interface{} {
	values := make([]string, len(dates))
	for i, d := range dates {
		values[i] = d.String()
	}
	return pq.Array(values)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDay(row rowScanner) (*domain.AvailabilityDay, error) {
	var day domain.AvailabilityDay
	if err := row.Scan(&day.RoomTypeID, &day.Date, &day.Committed, &day.ExternalHold); err != nil {
		return nil, err
	}
	return &day, nil
}
