package select_payment_method

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMethod      = "способ оплаты должен быть bank_transfer или cash_on_site"
	msgBookingNotFound    = "бронирование не найдено"
	msgInvalidTransition  = "способ оплаты выбирается только для подтвержденного бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment-method
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment-method - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.SelectPaymentMethodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment-method - Invalid request body: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.SelectPaymentMethod(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPaymentMethod):
			h.logger.Warn("POST /bookings/{id}/payment-method - Invalid method: booking_id=%d, method=%s", bookingID, req.Method)
			handlers.RespondBadRequest(w, msgInvalidMethod)
		case errors.Is(err, domain.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment-method - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/payment-method - Invalid transition: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)
		default:
			h.logger.Error("POST /bookings/{id}/payment-method - Failed to select method: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment-method - Payment method selected: booking_id=%d, method=%s, status=%s",
		bookingID, req.Method, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
