package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	createBooking "github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgRoomTypeNotFound   = "тип номера не найден"
	msgRoomTypeInactive   = "тип номера недоступен для бронирования"
	msgTooManyGuests      = "количество гостей превышает вместимость номера"
	msgCheckInInPast      = "дата заезда уже прошла"
	msgStayTooLong        = "слишком длинное проживание"
	msgInvalidDateRange   = "дата выезда должна быть позже даты заезда"
	msgNoAvailability     = "нет свободных номеров на %s"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var capErr *domain.CapacityError
		switch {
		case errors.As(err, &capErr):
			h.logger.Info("POST /bookings - No availability: room_type_id=%d, date=%s", req.RoomTypeID, capErr.Date)
			handlers.RespondConflict(w, fmt.Sprintf(msgNoAvailability, capErr.Date))

		case errors.Is(err, domain.ErrRoomTypeNotFound):
			h.logger.Warn("POST /bookings - Room type not found: room_type_id=%d", req.RoomTypeID)
			handlers.RespondNotFound(w, msgRoomTypeNotFound)

		case errors.Is(err, createBooking.ErrRoomTypeInactive):
			h.logger.Warn("POST /bookings - Room type inactive: room_type_id=%d", req.RoomTypeID)
			handlers.RespondUnprocessable(w, msgRoomTypeInactive)

		case errors.Is(err, createBooking.ErrTooManyGuests):
			h.logger.Warn("POST /bookings - Too many guests: room_type_id=%d, guests=%d", req.RoomTypeID, req.GuestCount)
			handlers.RespondUnprocessable(w, msgTooManyGuests)

		case errors.Is(err, createBooking.ErrCheckInInPast):
			h.logger.Warn("POST /bookings - Check-in in the past: check_in=%s", req.CheckIn)
			handlers.RespondBadRequest(w, msgCheckInInPast)

		case errors.Is(err, createBooking.ErrStayTooLong):
			h.logger.Warn("POST /bookings - Stay too long: check_in=%s, check_out=%s", req.CheckIn, req.CheckOut)
			handlers.RespondBadRequest(w, msgStayTooLong)

		case errors.Is(err, domain.ErrInvalidDateRange):
			h.logger.Warn("POST /bookings - Invalid date range: check_in=%s, check_out=%s", req.CheckIn, req.CheckOut)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: room_type_id=%d, error=%v", req.RoomTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, room_type_id=%d",
		result.ID, result.RoomTypeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
