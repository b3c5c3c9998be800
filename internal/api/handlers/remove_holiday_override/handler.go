package remove_holiday_override

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

const msgInvalidDate = "дата должна быть в формате YYYY-MM-DD"

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

// Handle DELETE /api/v1/admin/holidays/{date}
// Удаление отсутствующей пометки не считается ошибкой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := mux.Vars(r)["date"]
	date, err := types.ParseDate(rawDate)
	if err != nil {
		h.logger.Warn("DELETE /admin/holidays/{date} - Invalid date: date=%s", rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.RemoveHolidayOverride(r.Context(), date); err != nil {
		h.logger.Error("DELETE /admin/holidays/{date} - Failed to remove override: date=%s, error=%v", rawDate, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/holidays/{date} - Override removed: date=%s", rawDate)
	w.WriteHeader(http.StatusNoContent)
}
