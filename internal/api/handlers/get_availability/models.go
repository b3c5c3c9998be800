package get_availability

import (
	getAvailability "github.com/m04kA/SMC-HotelService/internal/usecase/get_availability"
)

// DayResponse доступность одной ночи
type DayResponse struct {
	Date         string `json:"date"`
	Capacity     int    `json:"capacity"`
	Committed    int    `json:"committed"`
	ExternalHold int    `json:"externalHold"`
	Remaining    int    `json:"remaining"`
	Price        string `json:"price"`
	Kind         string `json:"kind"`
	HolidayName  string `json:"holidayName,omitempty"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	RoomTypeID int64         `json:"roomTypeId"`
	From       string        `json:"from"`
	To         string        `json:"to"`
	Days       []DayResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, DayResponse{
			Date:         d.Date,
			Capacity:     d.Capacity,
			Committed:    d.Committed,
			ExternalHold: d.ExternalHold,
			Remaining:    d.Remaining,
			Price:        d.Price.StringFixed(2),
			Kind:         d.Kind,
			HolidayName:  d.HolidayName,
		})
	}

	return &AvailabilityResponse{
		RoomTypeID: resp.RoomTypeID,
		From:       resp.From,
		To:         resp.To,
		Days:       days,
	}
}
