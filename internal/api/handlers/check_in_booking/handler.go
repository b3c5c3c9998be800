package check_in_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgBookingNotFound   = "бронирование не найдено"
	msgInvalidTransition = "заезд возможен только для оплаченного бронирования или оплаты на месте"
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

// Handle POST /api/v1/bookings/{bookingId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/check-in - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.MarkCheckedIn(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound), errors.Is(err, domain.ErrPaymentNotFound):
			h.logger.Warn("POST /bookings/{id}/check-in - Not found: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/check-in - Invalid transition: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)
		default:
			h.logger.Error("POST /bookings/{id}/check-in - Failed to check in: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/check-in - Guest checked in: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
