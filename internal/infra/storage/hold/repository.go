package hold

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-HotelService/pkg/txmanager"
)

var columns = []string{
	"id",
	"source",
	"external_id",
	"room_type_id",
	"start_date",
	"end_date",
	"note",
	"applied",
	"applied_room_type_ids",
	"created_at",
	"updated_at",
}

// Repository внешние блокировки из календарей OTA
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает блокировку по (source, externalID)
func (r *Repository) Get(ctx context.Context, source, externalID string) (*domain.ExternalHold, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("external_holds").
		Where(squirrel.Eq{"source": source, "external_id": externalID})
	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %w", ErrBuildQuery, err)
	}

	h, err := scanHold(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan hold: %w", ErrScanRow, err)
	}

	return h, nil
}

// ListBySource получает блокировки источника, упорядоченные по external id
func (r *Repository) ListBySource(ctx context.Context, source string) ([]*domain.ExternalHold, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("external_holds").
		Where(squirrel.Eq{"source": source}).
		OrderBy("external_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySource - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySource - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ExternalHold, 0)
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySource - scan row: %w", ErrScanRow, err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySource - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Upsert создает или заменяет блокировку по (source, externalID)
func (r *Repository) Upsert(ctx context.Context, hold *domain.ExternalHold) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("external_holds").
		Columns("source", "external_id", "room_type_id", "start_date", "end_date", "note", "applied", "applied_room_type_ids").
		Values(hold.Source, hold.ExternalID, hold.RoomTypeID, hold.Start, hold.End, hold.Note, hold.Applied,
			pq.Array(appliedIDs(hold))).
		Suffix(`ON CONFLICT (source, external_id) DO UPDATE SET
			room_type_id = EXCLUDED.room_type_id,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			note = EXCLUDED.note,
			applied = EXCLUDED.applied,
			applied_room_type_ids = EXCLUDED.applied_room_type_ids,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&hold.ID, &hold.CreatedAt, &hold.UpdatedAt); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет блокировку; отсутствие записи не ошибка
func (r *Repository) Delete(ctx context.Context, source, externalID string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("external_holds").
		Where(squirrel.Eq{"source": source, "external_id": externalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHold(row rowScanner) (*domain.ExternalHold, error) {
	var h domain.ExternalHold
	var roomTypeID sql.NullInt64

	err := row.Scan(
		&h.ID,
		&h.Source,
		&h.ExternalID,
		&roomTypeID,
		&h.Start,
		&h.End,
		&h.Note,
		&h.Applied,
		pq.Array(&h.AppliedRoomTypeIDs),
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if roomTypeID.Valid {
		h.RoomTypeID = &roomTypeID.Int64
	}
	return &h, nil
}

// appliedIDs пустой массив вместо NULL для неприменённой блокировки
func appliedIDs(hold *domain.ExternalHold) []int64 {
	if hold.AppliedRoomTypeIDs == nil {
		return []int64{}
	}
	return hold.AppliedRoomTypeIDs
}
