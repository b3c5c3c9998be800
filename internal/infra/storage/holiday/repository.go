package holiday

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-HotelService/pkg/txmanager"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// Repository ручные пометки праздников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пометок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListRange возвращает пометки в [from, to)
func (r *Repository) ListRange(ctx context.Context, from, to types.Date) ([]domain.HolidayOverride, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date", "is_holiday", "note").
		From("holiday_overrides").
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.HolidayOverride, 0)
	for rows.Next() {
		var o domain.HolidayOverride
		if err := rows.Scan(&o.Date, &o.IsHoliday, &o.Note); err != nil {
			return nil, fmt.Errorf("%w: ListRange - scan row: %w", ErrScanRow, err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRange - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Upsert сохраняет пометку на дату
func (r *Repository) Upsert(ctx context.Context, o domain.HolidayOverride) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holiday_overrides").
		Columns("date", "is_holiday", "note").
		Values(o.Date, o.IsHoliday, o.Note).
		Suffix("ON CONFLICT (date) DO UPDATE SET is_holiday = EXCLUDED.is_holiday, note = EXCLUDED.note").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// Delete удаляет пометку на дату
func (r *Repository) Delete(ctx context.Context, date types.Date) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holiday_overrides").
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}
	return nil
}
