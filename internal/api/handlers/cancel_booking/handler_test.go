package cancel_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/bookings"
	"github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

func serve(svc BookingService, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/5/cancel", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "5"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_WithReason(t *testing.T) {
	svc := &serviceMock{}
	svc.On("Cancel", mock.Anything, int64(5), &models.CancelBookingRequest{CancellationReason: "flight cancelled"}).
		Return(&models.BookingResponse{ID: 5, Status: "cancelled"}, nil)

	rec := serve(svc, `{"cancellationReason":"flight cancelled"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
	svc.AssertExpectations(t)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &serviceMock{}
	svc.On("Cancel", mock.Anything, int64(5), &models.CancelBookingRequest{}).
		Return(&models.BookingResponse{ID: 5, Status: "cancelled"}, nil)

	rec := serve(svc, "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "already cancelled", err: fmt.Errorf("%w: terminal", domain.ErrInvalidTransition), status: http.StatusConflict},
		{name: "not found", err: domain.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "reason too long", err: fmt.Errorf("%w: too long", bookings.ErrInvalidInput), status: http.StatusBadRequest},
		{name: "internal", err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("Cancel", mock.Anything, int64(5), mock.Anything).Return(nil, tt.err)

			rec := serve(svc, "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
