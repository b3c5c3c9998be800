package submit_payment_fragment

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
	msgInvalidFormat      = "нужно указать ровно пять цифр"
	msgFragmentEmpty      = "не указаны последние пять цифр счета отправителя"
	msgFragmentNotDigits  = "допускаются только цифры 0-9"
	msgNotFound           = "бронирование или платежные данные не найдены"
	msgInvalidTransition  = "бронирование не ожидает банковский перевод"
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

// Handle POST /api/v1/bookings/{bookingId}/payment/fragment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment/fragment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.SubmitFragmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment/fragment - Invalid request body: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	payment, err := h.service.SubmitTransferFragment(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFormat):
			h.logger.Warn("POST /bookings/{id}/payment/fragment - Invalid format: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, formatMessage(err))
		case errors.Is(err, domain.ErrBookingNotFound), errors.Is(err, domain.ErrPaymentNotFound):
			h.logger.Warn("POST /bookings/{id}/payment/fragment - Not found: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/payment/fragment - Invalid transition: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)
		default:
			h.logger.Error("POST /bookings/{id}/payment/fragment - Failed to submit fragment: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment/fragment - Fragment submitted: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, payment)
}

func formatMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrFragmentEmpty):
		return msgFragmentEmpty
	case errors.Is(err, domain.ErrFragmentNotDigits):
		return msgFragmentNotDigits
	default:
		return msgInvalidFormat
	}
}
