package submit_payment_fragment

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
	"github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) SubmitTransferFragment(ctx context.Context, id int64, req *models.SubmitFragmentRequest) (*models.PaymentResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*models.PaymentResponse)
	return resp, args.Error(1)
}

func serve(svc BookingService, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/5/payment/fragment", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "5"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "accepted", status: http.StatusOK},
		{name: "empty fragment", err: domain.ErrFragmentEmpty, status: http.StatusBadRequest, message: msgFragmentEmpty},
		{name: "not digits", err: domain.ErrFragmentNotDigits, status: http.StatusBadRequest, message: msgFragmentNotDigits},
		{
			name:    "wrong length",
			err:     fmt.Errorf("%w, got 4", domain.ErrFragmentLength),
			status:  http.StatusBadRequest,
			message: msgInvalidFormat,
		},
		{name: "booking not found", err: domain.ErrBookingNotFound, status: http.StatusNotFound, message: msgNotFound},
		{
			name:    "wrong status",
			err:     fmt.Errorf("%w: cannot submit_fragment from pending", domain.ErrInvalidTransition),
			status:  http.StatusConflict,
			message: msgInvalidTransition,
		},
		{name: "internal", err: fmt.Errorf("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp *models.PaymentResponse
			if tt.err == nil {
				resp = &models.PaymentResponse{}
			}
			svc := &serviceMock{}
			svc.On("SubmitTransferFragment", mock.Anything, int64(5), mock.Anything).Return(resp, tt.err)

			rec := serve(svc, `{"lastFive":"12345"}`)

			assert.Equal(t, tt.status, rec.Code)
			if tt.message != "" {
				assert.Contains(t, rec.Body.String(), tt.message)
			}
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	svc := &serviceMock{}

	rec := serve(svc, `{"lastFive":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "SubmitTransferFragment", mock.Anything, mock.Anything, mock.Anything)
}
