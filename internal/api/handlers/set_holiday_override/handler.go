package set_holiday_override

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

const (
	msgInvalidDate        = "дата должна быть в формате YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgIsHolidayRequired  = "поле isHoliday обязательно"
	msgInvalidOverride    = "некорректная пометка даты"
)

// OverrideRequest HTTP request model
type OverrideRequest struct {
	IsHoliday *bool  `json:"isHoliday"`
	Note      string `json:"note,omitempty"`
}

// OverrideResponse HTTP response model
type OverrideResponse struct {
	Date      string `json:"date"`
	IsHoliday bool   `json:"isHoliday"`
	Note      string `json:"note,omitempty"`
}

type Handler struct {
	service HolidayService
	logger  Logger
}

func NewHandler(service HolidayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/holidays/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := mux.Vars(r)["date"]
	date, err := types.ParseDate(rawDate)
	if err != nil {
		h.logger.Warn("PUT /admin/holidays/{date} - Invalid date: date=%s", rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req OverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/holidays/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.IsHoliday == nil {
		handlers.RespondBadRequest(w, msgIsHolidayRequired)
		return
	}

	override := domain.HolidayOverride{Date: date, IsHoliday: *req.IsHoliday, Note: req.Note}
	if err := h.service.SetHolidayOverride(r.Context(), override); err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/holidays/{date} - Invalid override: date=%s, error=%v", rawDate, err)
			handlers.RespondBadRequest(w, msgInvalidOverride)
			return
		}
		h.logger.Error("PUT /admin/holidays/{date} - Failed to set override: date=%s, error=%v", rawDate, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/holidays/{date} - Override saved: date=%s, is_holiday=%t", rawDate, override.IsHoliday)
	handlers.RespondJSON(w, http.StatusOK, &OverrideResponse{
		Date:      date.String(),
		IsHoliday: override.IsHoliday,
		Note:      override.Note,
	})
}
