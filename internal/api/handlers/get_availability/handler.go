package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	getAvailability "github.com/m04kA/SMC-HotelService/internal/usecase/get_availability"
)

const (
	msgInvalidRoomTypeID = "некорректный ID типа номера"
	msgInvalidRange      = "некорректный период: from и to в формате YYYY-MM-DD, to позже from"
	msgRangeTooLong      = "слишком длинный период"
	msgRoomTypeNotFound  = "тип номера не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/room-types/{roomTypeId}/availability?from=2026-01-15&to=2026-02-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomTypeID, err := handlers.PathID(r, "roomTypeId")
	if err != nil {
		h.logger.Warn("GET /room-types/{id}/availability - Invalid room type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomTypeID)
		return
	}

	req := &getAvailability.Request{
		RoomTypeID: roomTypeID,
		From:       r.URL.Query().Get("from"),
	}
	if to := r.URL.Query().Get("to"); to != "" {
		req.To = &to
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrRangeTooLong):
			h.logger.Warn("GET /room-types/{id}/availability - Range too long: room_type_id=%d", roomTypeID)
			handlers.RespondBadRequest(w, msgRangeTooLong)
		case errors.Is(err, getAvailability.ErrInvalidInput), errors.Is(err, domain.ErrInvalidDateRange):
			h.logger.Warn("GET /room-types/{id}/availability - Invalid range: room_type_id=%d, error=%v", roomTypeID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)
		case errors.Is(err, domain.ErrRoomTypeNotFound):
			h.logger.Warn("GET /room-types/{id}/availability - Room type not found: room_type_id=%d", roomTypeID)
			handlers.RespondNotFound(w, msgRoomTypeNotFound)
		default:
			h.logger.Error("GET /room-types/{id}/availability - Failed to get availability: room_type_id=%d, error=%v", roomTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /room-types/{id}/availability - Availability retrieved: room_type_id=%d, days=%d",
		roomTypeID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
