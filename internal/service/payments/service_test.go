package payments

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func setup(t *testing.T, status domain.BookingStatus, method domain.PaymentMethod) (*Service, *memory.Store, *domain.Booking) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	booking, err := store.Bookings().Create(ctx, &domain.Booking{
		RoomTypeID: 1,
		Guest:      domain.GuestInfo{Name: "Lin Mei", Email: "mei@example.com"},
		CheckIn:    types.MustParseDate("2026-01-15"),
		CheckOut:   types.MustParseDate("2026-01-17"),
		GuestCount: 2,
		TotalPrice: decimal.NewFromInt(5600),
		Status:     status,
	})
	require.NoError(t, err)

	svc := NewService(store.Payments(), store.Bookings(), store.TxManager(), domain.HotelSettings{
		BankName:    "First Bank",
		BankAccount: "123-456-789012",
	}, logger.NewNop())
	svc.timeProvider = fixedTime{now: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}

	_, err = svc.Open(ctx, booking, method)
	require.NoError(t, err)

	return svc, store, booking
}

func TestOpen_BankTransferCarriesInstructions(t *testing.T) {
	svc, _, booking := setup(t, domain.StatusPaymentPending, domain.PaymentMethodBankTransfer)

	detail, err := svc.GetByBookingID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "First Bank", detail.BankName)
	assert.Equal(t, "123-456-789012", detail.BankAccount)
	assert.True(t, detail.Amount.Equal(decimal.NewFromInt(5600)))
	assert.Equal(t, domain.PaymentStatusPending, detail.Status)
	assert.Nil(t, detail.LastFive)
}

func TestSubmitFragment(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects malformed fragments without touching the record", func(t *testing.T) {
		svc, _, booking := setup(t, domain.StatusPaymentPending, domain.PaymentMethodBankTransfer)

		for _, bad := range []string{"1234", "123456", "abcde", ""} {
			_, err := svc.SubmitFragment(ctx, booking.ID, bad)
			assert.ErrorIs(t, err, domain.ErrInvalidFormat, "fragment %q", bad)
		}

		detail, err := svc.GetByBookingID(ctx, booking.ID)
		require.NoError(t, err)
		assert.Nil(t, detail.LastFive)
	})

	t.Run("accepts leading zero and overwrites prior submission", func(t *testing.T) {
		svc, store, booking := setup(t, domain.StatusPaymentPending, domain.PaymentMethodBankTransfer)

		_, err := svc.SubmitFragment(ctx, booking.ID, "11111")
		require.NoError(t, err)
		detail, err := svc.SubmitFragment(ctx, booking.ID, "03295")
		require.NoError(t, err)
		assert.Equal(t, "03295", *detail.LastFive)
		require.NotNil(t, detail.SubmittedAt)

		got, err := store.Bookings().GetByID(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaymentPending, got.Status, "submission does not change booking status")
	})

	t.Run("rejects fragments for cash bookings", func(t *testing.T) {
		svc, _, booking := setup(t, domain.StatusCashOnSite, domain.PaymentMethodCashOnSite)
		_, err := svc.SubmitFragment(ctx, booking.ID, "12345")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestConfirmReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fragment", func(t *testing.T) {
		svc, _, booking := setup(t, domain.StatusPaymentPending, domain.PaymentMethodBankTransfer)

		_, err := svc.ConfirmReceipt(ctx, booking.ID)
		assert.ErrorIs(t, err, domain.ErrMissingFragment)

		detail, err := svc.GetByBookingID(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, detail.Status)
	})

	t.Run("marks received and only changes state", func(t *testing.T) {
		svc, _, booking := setup(t, domain.StatusPaymentPending, domain.PaymentMethodBankTransfer)

		_, err := svc.SubmitFragment(ctx, booking.ID, "03295")
		require.NoError(t, err)

		detail, err := svc.ConfirmReceipt(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusReceived, detail.Status)
		require.NotNil(t, detail.ConfirmedAt)
		assert.True(t, detail.Amount.Equal(decimal.NewFromInt(5600)), "amount is never changed by reconciliation")

		_, err = svc.ConfirmReceipt(ctx, booking.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _, _ := setup(t, domain.StatusPaymentPending, domain.PaymentMethodBankTransfer)
		_, err := svc.ConfirmReceipt(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})
}

func TestMarkReceivedOnSite(t *testing.T) {
	ctx := context.Background()
	svc, _, booking := setup(t, domain.StatusCashOnSite, domain.PaymentMethodCashOnSite)

	detail, err := svc.MarkReceivedOnSite(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusReceived, detail.Status)
	assert.Empty(t, detail.BankAccount)
}
