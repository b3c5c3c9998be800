package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-HotelService/pkg/txmanager"
)

var columns = []string{
	"id",
	"room_type_id",
	"guest_name",
	"guest_email",
	"guest_phone",
	"check_in",
	"check_out",
	"guest_count",
	"total_price",
	"status",
	"special_requests",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается внутри транзакции вместе с резервированием ночей
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"room_type_id",
			"guest_name",
			"guest_email",
			"guest_phone",
			"check_in",
			"check_out",
			"guest_count",
			"total_price",
			"status",
			"special_requests",
		).
		Values(
			booking.RoomTypeID,
			booking.Guest.Name,
			booking.Guest.Email,
			booking.Guest.Phone,
			booking.CheckIn,
			booking.CheckOut,
			booking.GuestCount,
			booking.TotalPrice,
			booking.Status,
			booking.SpecialRequests,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется до ее завершения, поэтому переходы одной брони идут по очереди
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру в порядке id
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		OrderBy("id ASC")

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}
	if filter.RoomTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_type_id": *filter.RoomTypeID})
	}
	if filter.CheckInOn != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"check_in": *filter.CheckInOn})
	}
	if filter.CheckOutOn != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"check_out": *filter.CheckOutOn})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus меняет статус, только если текущий статус равен from
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, "UpdateStatus", id, from, query, args)
}

// Cancel переводит бронирование в cancelled, только если текущий статус равен from
func (r *Repository) Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason *string, at time.Time) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, "Cancel", id, from, query, args)
}

// execGuarded выполняет UPDATE с условием на статус
// Если строка не изменилась, различает отсутствие брони и параллельную смену статуса
func (r *Repository) execGuarded(ctx context.Context, op string, id int64, from domain.BookingStatus, query string, args []interface{}) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: status changed concurrently, expected %s got %s",
		domain.ErrInvalidTransition, from, current.Status)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var specialRequests, cancellationReason sql.NullString
	var cancelledAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.RoomTypeID,
		&booking.Guest.Name,
		&booking.Guest.Email,
		&booking.Guest.Phone,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.GuestCount,
		&booking.TotalPrice,
		&booking.Status,
		&specialRequests,
		&cancellationReason,
		&cancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if specialRequests.Valid {
		booking.SpecialRequests = &specialRequests.String
	}
	if cancellationReason.Valid {
		booking.CancellationReason = &cancellationReason.String
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}

	return &booking, nil
}
