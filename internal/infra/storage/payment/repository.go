package payment

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

const uniqueViolation = "23505"

var columns = []string{
	"id",
	"booking_id",
	"method",
	"amount",
	"status",
	"bank_name",
	"bank_account",
	"last_five",
	"submitted_at",
	"confirmed_at",
	"created_at",
	"updated_at",
}

// Repository платежные данные бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежных данных
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет платежные данные; у бронирования может быть только одна запись
func (r *Repository) Create(ctx context.Context, p *domain.PaymentDetail) (*domain.PaymentDetail, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_details").
		Columns("booking_id", "method", "amount", "status", "bank_name", "bank_account", "last_five", "submitted_at", "confirmed_at").
		Values(p.BookingID, p.Method, p.Amount, p.Status, p.BankName, p.BankAccount, p.LastFive, p.SubmittedAt, p.ConfirmedAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: booking id=%d", ErrDuplicate, p.BookingID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return p, nil
}

// GetByBookingID получает платежные данные бронирования
// Внутри транзакции строка блокируется до ее завершения
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.PaymentDetail, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("payment_details").
		Where(squirrel.Eq{"booking_id": bookingID})
	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %w", ErrBuildQuery, err)
	}

	var p domain.PaymentDetail
	var lastFive sql.NullString
	var submittedAt, confirmedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.BookingID,
		&p.Method,
		&p.Amount,
		&p.Status,
		&p.BankName,
		&p.BankAccount,
		&lastFive,
		&submittedAt,
		&confirmedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan payment: %w", ErrScanRow, err)
	}

	if lastFive.Valid {
		p.LastFive = &lastFive.String
	}
	if submittedAt.Valid {
		p.SubmittedAt = &submittedAt.Time
	}
	if confirmedAt.Valid {
		p.ConfirmedAt = &confirmedAt.Time
	}

	return &p, nil
}

// Update сохраняет изменения платежных данных
func (r *Repository) Update(ctx context.Context, p *domain.PaymentDetail) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payment_details").
		Set("method", p.Method).
		Set("amount", p.Amount).
		Set("status", p.Status).
		Set("bank_name", p.BankName).
		Set("bank_account", p.BankAccount).
		Set("last_five", p.LastFive).
		Set("submitted_at", p.SubmittedAt).
		Set("confirmed_at", p.ConfirmedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": p.BookingID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrPaymentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return nil
}
