package reminderlog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-HotelService/pkg/txmanager"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// Repository журнал отправленных напоминаний
// Первичный ключ (booking_id, category, run_date) не дает отправить напоминание дважды за день
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Claim резервирует отправку напоминания; false, если оно уже отправлено в этот день
func (r *Repository) Claim(ctx context.Context, bookingID int64, category domain.ReminderCategory, runDate types.Date) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reminder_log").
		Columns("booking_id", "category", "run_date").
		Values(bookingID, category, runDate).
		Suffix("ON CONFLICT (booking_id, category, run_date) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Claim - build insert query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Claim - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Claim - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// Release снимает резерв после неудачной доставки
func (r *Repository) Release(ctx context.Context, bookingID int64, category domain.ReminderCategory, runDate types.Date) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reminder_log").
		Where(squirrel.Eq{"booking_id": bookingID, "category": category, "run_date": runDate}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute delete: %w", ErrExecQuery, err)
	}
	return nil
}
