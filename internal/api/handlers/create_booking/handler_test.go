package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	createBooking "github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createBooking.Response)
	return resp, args.Error(1)
}

const body = `{"roomTypeId":1,"checkIn":"2026-01-15","checkOut":"2026-01-17","guestName":"Chen Mei","guestEmail":"mei@example.com","guestCount":2}`

func serve(uc CreateBookingUseCase, payload string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &useCaseMock{}
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.RoomTypeID == 1 && r.CheckIn == "2026-01-15" && r.GuestCount == 2
	})).Return(&createBooking.Response{
		ID:         7,
		RoomTypeID: 1,
		GuestName:  "Chen Mei",
		GuestEmail: "mei@example.com",
		CheckIn:    "2026-01-15",
		CheckOut:   "2026-01-17",
		GuestCount: 2,
		TotalPrice: decimal.RequireFromString("6400"),
		Currency:   "TWD",
		Status:     "pending",
		Nights: []createBooking.Night{
			{Date: "2026-01-15", Price: decimal.RequireFromString("2800"), Kind: "weekday"},
			{Date: "2026-01-16", Price: decimal.RequireFromString("3600"), Kind: "weekend"},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}, nil)

	rec := serve(uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "6400.00", resp.TotalPrice)
	assert.Equal(t, "pending", resp.Status)
	require.Len(t, resp.Nights, 2)
	assert.Equal(t, "3600.00", resp.Nights[1].Price)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{
			name:   "no availability",
			err:    &domain.CapacityError{RoomTypeID: 1, Date: types.MustParseDate("2026-01-16")},
			status: http.StatusConflict,
		},
		{name: "room type not found", err: domain.ErrRoomTypeNotFound, status: http.StatusNotFound},
		{name: "room type inactive", err: createBooking.ErrRoomTypeInactive, status: http.StatusUnprocessableEntity},
		{name: "too many guests", err: createBooking.ErrTooManyGuests, status: http.StatusUnprocessableEntity},
		{name: "check-in in past", err: createBooking.ErrCheckInInPast, status: http.StatusBadRequest},
		{name: "invalid input", err: createBooking.ErrInvalidInput, status: http.StatusBadRequest},
		{
			name:   "check-out not after check-in",
			err:    fmt.Errorf("%w: %w", createBooking.ErrInvalidInput, domain.ErrInvalidDateRange),
			status: http.StatusBadRequest,
		},
		{name: "bare invalid date range", err: domain.ErrInvalidDateRange, status: http.StatusBadRequest},
		{name: "internal", err: createBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseMock{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(uc, body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_InvalidDateRangeExplainsReason(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %w", createBooking.ErrInvalidInput, domain.ErrInvalidDateRange))

	rec := serve(uc, body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidDateRange)
}

func TestHandle_NoAvailabilityNamesDate(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &domain.CapacityError{RoomTypeID: 1, Date: types.MustParseDate("2026-01-16")})

	rec := serve(uc, body)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "2026-01-16")
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &useCaseMock{}

	rec := serve(uc, `{"roomTypeId":"one"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
