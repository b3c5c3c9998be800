package list_bookings

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/service/bookings"
	"github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
)

const (
	msgInvalidRoomTypeID = "некорректный ID типа номера"
	msgInvalidFilter     = "некорректный фильтр: проверьте статус и даты"
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

// Handle GET /api/v1/bookings?status=pending,confirmed&roomTypeId=1&checkInOn=2026-01-15&checkOutOn=2026-01-17
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid room type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomTypeID)
		return
	}

	result, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseQuery собирает фильтр из query параметров
// status принимает как повторяющиеся параметры, так и список через запятую
func parseQuery(q url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	for _, raw := range q["status"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.Statuses = append(req.Statuses, s)
			}
		}
	}

	if raw := q.Get("roomTypeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, errors.New("roomTypeId must be a positive integer")
		}
		req.RoomTypeID = &id
	}

	if v := q.Get("checkInOn"); v != "" {
		req.CheckInOn = &v
	}
	if v := q.Get("checkOutOn"); v != "" {
		req.CheckOutOn = &v
	}

	return req, nil
}
