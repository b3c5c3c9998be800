package get_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	getAvailability "github.com/m04kA/SMC-HotelService/internal/usecase/get_availability"
)

const (
	msgInvalidRoomTypeID = "некорректный ID типа номера"
	msgInvalidDate       = "дата должна быть в формате YYYY-MM-DD"
	msgRoomTypeNotFound  = "тип номера не найден"
)

// PriceResponse HTTP response model
type PriceResponse struct {
	RoomTypeID  int64  `json:"roomTypeId"`
	Date        string `json:"date"`
	Price       string `json:"price"`
	Kind        string `json:"kind"`
	HolidayName string `json:"holidayName,omitempty"`
}

type Handler struct {
	useCase GetPriceUseCase
	logger  Logger
}

func NewHandler(useCase GetPriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/room-types/{roomTypeId}/price?date=2026-01-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomTypeID, err := handlers.PathID(r, "roomTypeId")
	if err != nil {
		h.logger.Warn("GET /room-types/{id}/price - Invalid room type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomTypeID)
		return
	}

	date := r.URL.Query().Get("date")
	result, err := h.useCase.GetPrice(r.Context(), &getAvailability.PriceRequest{
		RoomTypeID: roomTypeID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /room-types/{id}/price - Invalid date: date=%s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, domain.ErrRoomTypeNotFound):
			h.logger.Warn("GET /room-types/{id}/price - Room type not found: room_type_id=%d", roomTypeID)
			handlers.RespondNotFound(w, msgRoomTypeNotFound)
		default:
			h.logger.Error("GET /room-types/{id}/price - Failed to get price: room_type_id=%d, error=%v", roomTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &PriceResponse{
		RoomTypeID:  result.RoomTypeID,
		Date:        result.Date,
		Price:       result.Price.StringFixed(2),
		Kind:        result.Kind,
		HolidayName: result.HolidayName,
	})
}
