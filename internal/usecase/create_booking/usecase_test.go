package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
	"github.com/m04kA/SMC-HotelService/internal/service/bookings"
	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelService/internal/service/holidays"
	"github.com/m04kA/SMC-HotelService/internal/service/payments"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
	"github.com/m04kA/SMC-HotelService/pkg/metrics"
	"github.com/m04kA/SMC-HotelService/pkg/ptr"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingNotifier struct {
	sent []domain.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg domain.Notification) error {
	n.sent = append(n.sent, msg)
	return n.err
}

type env struct {
	uc       *UseCase
	bookings *bookings.Service
	ledger   *availability.Service
	notifier *recordingNotifier
}

func newEnv(t *testing.T, capacity int) *env {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	require.NoError(t, store.RoomTypes().Upsert(ctx, &domain.RoomType{
		ID:          1,
		Name:        "Deluxe Double",
		TotalRooms:  capacity,
		MaxGuests:   2,
		WeekdayRate: decimal.NewFromInt(2800),
		WeekendRate: decimal.NewFromInt(3600),
		Active:      true,
	}))
	require.NoError(t, store.RoomTypes().Upsert(ctx, &domain.RoomType{
		ID:          2,
		Name:        "Retired Suite",
		TotalRooms:  1,
		MaxGuests:   4,
		WeekdayRate: decimal.NewFromInt(5000),
		WeekendRate: decimal.NewFromInt(6000),
		Active:      false,
	}))

	var m *metrics.Metrics
	log := logger.NewNop()
	settings := domain.HotelSettings{Location: time.UTC, Currency: "TWD", BankName: "First Bank", BankAccount: "123-456-789012"}
	clock := fixedTime{now: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}

	ledger := availability.NewService(store.RoomTypes(), store.Days(), store.Holds(), store.HolidayOverrides(),
		holidays.NewCalendar(), store.TxManager(), m, log)
	paymentSvc := payments.NewService(store.Payments(), store.Bookings(), store.TxManager(), settings, log)
	notifier := &recordingNotifier{}

	uc := NewUseCase(store.Bookings(), store.RoomTypes(), ledger, notifier, store.TxManager(), settings, m, log)
	uc.timeProvider = clock

	bookingSvc := bookings.NewService(store.Bookings(), ledger, paymentSvc, notifier, store.TxManager(), settings, m, log)

	return &env{uc: uc, bookings: bookingSvc, ledger: ledger, notifier: notifier}
}

func request(checkIn, checkOut string) *Request {
	return &Request{
		RoomTypeID: 1,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestName:  "Lin Mei",
		GuestEmail: "mei@example.com",
		GuestPhone: "0912345678",
		GuestCount: 2,
	}
}

func (e *env) committed(t *testing.T, date string) int {
	t.Helper()
	day := types.MustParseDate(date)
	days, err := e.ledger.GetAvailability(context.Background(), 1, domain.DateRange{Start: day, End: day.AddDays(1)})
	require.NoError(t, err)
	require.Len(t, days, 1)
	return days[0].Committed
}

func TestExecute_EndToEndScenario(t *testing.T) {
	e := newEnv(t, 2)
	ctx := context.Background()

	a, err := e.uc.Execute(ctx, request("2026-01-15", "2026-01-17"))
	require.NoError(t, err)
	assert.Equal(t, 1, e.committed(t, "2026-01-15"))

	_, err = e.uc.Execute(ctx, request("2026-01-15", "2026-01-16"))
	require.NoError(t, err)
	assert.Equal(t, 2, e.committed(t, "2026-01-15"))

	_, err = e.uc.Execute(ctx, request("2026-01-15", "2026-01-16"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	var capErr *domain.CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, "2026-01-15", capErr.Date.String())

	_, err = e.bookings.Cancel(ctx, a.ID, &bookingModels.CancelBookingRequest{CancellationReason: "plans changed"})
	require.NoError(t, err)
	assert.Equal(t, 1, e.committed(t, "2026-01-15"))
	assert.Equal(t, 0, e.committed(t, "2026-01-16"))

	c, err := e.uc.Execute(ctx, request("2026-01-15", "2026-01-16"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), c.Status)
	assert.Equal(t, 2, e.committed(t, "2026-01-15"))
}

func TestExecute_QuotesEveryNight(t *testing.T) {
	e := newEnv(t, 2)

	// Пятница и суббота
	resp, err := e.uc.Execute(context.Background(), request("2026-01-16", "2026-01-18"))
	require.NoError(t, err)

	require.Len(t, resp.Nights, 2)
	assert.Equal(t, "weekday", resp.Nights[0].Kind)
	assert.Equal(t, "weekend", resp.Nights[1].Kind)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(6400)), resp.TotalPrice.String())
	assert.Equal(t, "TWD", resp.Currency)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	require.Len(t, e.notifier.sent, 1)
	assert.Equal(t, domain.NotificationBookingCreated, e.notifier.sent[0].Category)
	assert.Equal(t, "6400.00", e.notifier.sent[0].Payload["amount"])
	assert.Equal(t, "2", e.notifier.sent[0].Payload["nights"])
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{
			name:    "missing guest name",
			modify:  func(r *Request) { r.GuestName = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "invalid email",
			modify:  func(r *Request) { r.GuestEmail = "not-an-email" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed date",
			modify:  func(r *Request) { r.CheckIn = "15.01.2026" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero guests",
			modify:  func(r *Request) { r.GuestCount = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "check-out before check-in",
			modify:  func(r *Request) { r.CheckOut = "2026-01-14" },
			wantErr: domain.ErrInvalidDateRange,
		},
		{
			name:    "same day check-out",
			modify:  func(r *Request) { r.CheckOut = r.CheckIn },
			wantErr: domain.ErrInvalidDateRange,
		},
		{
			name:    "check-out before check-in is invalid input",
			modify:  func(r *Request) { r.CheckIn, r.CheckOut = "2026-01-17", "2026-01-15" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "check-in in the past",
			modify:  func(r *Request) { r.CheckIn = "2026-01-09" },
			wantErr: ErrCheckInInPast,
		},
		{
			name:    "stay too long",
			modify:  func(r *Request) { r.CheckOut = "2026-02-20" },
			wantErr: ErrStayTooLong,
		},
		{
			name:    "too many guests",
			modify:  func(r *Request) { r.GuestCount = 3 },
			wantErr: ErrTooManyGuests,
		},
		{
			name:    "unknown room type",
			modify:  func(r *Request) { r.RoomTypeID = 99 },
			wantErr: domain.ErrRoomTypeNotFound,
		},
		{
			name:    "inactive room type",
			modify:  func(r *Request) { r.RoomTypeID = 2 },
			wantErr: ErrRoomTypeInactive,
		},
		{
			name:    "special requests too long",
			modify:  func(r *Request) { r.SpecialRequests = ptr.Ptr(string(make([]byte, 501))) },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, 2)
			req := request("2026-01-15", "2026-01-17")
			tt.modify(req)

			_, err := e.uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, e.committed(t, "2026-01-15"))
			assert.Empty(t, e.notifier.sent)
		})
	}
}

func TestExecute_NotificationFailureKeepsBooking(t *testing.T) {
	e := newEnv(t, 1)
	e.notifier.err = errors.New("broker unavailable")

	resp, err := e.uc.Execute(context.Background(), request("2026-01-15", "2026-01-16"))
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, 1, e.committed(t, "2026-01-15"))
}
