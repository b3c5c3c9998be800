package payment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/infra/storage/pgtest"
	"github.com/m04kA/SMC-HotelService/pkg/ptr"
)

func TestRepository_Lifecycle(t *testing.T) {
	db := pgtest.Open(t)
	pgtest.SeedRoomType(t, db, 1, 2)
	bookingID := pgtest.SeedBooking(t, db, 1)
	repo := NewRepository(db)
	ctx := context.Background()

	p, err := repo.Create(ctx, &domain.PaymentDetail{
		BookingID:   bookingID,
		Method:      domain.PaymentMethodBankTransfer,
		Amount:      decimal.RequireFromString("6400.00"),
		Status:      domain.PaymentStatusPending,
		BankName:    "Bank of Taiwan",
		BankAccount: "004-123-456789",
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	_, err = repo.Create(ctx, &domain.PaymentDetail{
		BookingID: bookingID,
		Method:    domain.PaymentMethodCashOnSite,
		Status:    domain.PaymentStatusPending,
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	submitted := time.Date(2026, 1, 11, 10, 0, 0, 0, time.UTC)
	p.LastFive = ptr.Ptr("12345")
	p.SubmittedAt = &submitted
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByBookingID(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, "12345", ptr.Value(got.LastFive))
	require.NotNil(t, got.SubmittedAt)
	assert.True(t, submitted.Equal(*got.SubmittedAt))
	assert.Nil(t, got.ConfirmedAt)
	assert.Equal(t, domain.PaymentMethodBankTransfer, got.Method)

	_, err = repo.GetByBookingID(ctx, bookingID+100)
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)

	err = repo.Update(ctx, &domain.PaymentDetail{BookingID: bookingID + 100, Status: domain.PaymentStatusPending, Method: domain.PaymentMethodCashOnSite})
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}
