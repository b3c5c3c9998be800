package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// buildCalendar объединяет счетчики и цены по датам
// Ledger возвращает обе последовательности в порядке дат периода
func buildCalendar(roomTypeID int64, r domain.DateRange, days []*domain.AvailabilityDay, quote *domain.StayQuote) (*Response, error) {
	if len(days) != len(quote.Nights) {
		return nil, fmt.Errorf("%w: %d availability days vs %d priced nights", ErrInternal, len(days), len(quote.Nights))
	}

	resp := &Response{
		RoomTypeID: roomTypeID,
		From:       r.Start.String(),
		To:         r.End.String(),
		Days:       make([]Day, 0, len(days)),
	}

	for i, day := range days {
		night := quote.Nights[i]
		if night.Date != day.Date {
			return nil, fmt.Errorf("%w: date mismatch %s vs %s", ErrInternal, day.Date, night.Date)
		}

		resp.Days = append(resp.Days, Day{
			Date:         day.Date.String(),
			Capacity:     day.Capacity,
			Committed:    day.Committed,
			ExternalHold: day.ExternalHold,
			Remaining:    day.Remaining(),
			Price:        night.Price,
			Kind:         string(night.Kind),
			HolidayName:  night.HolidayName,
		})
	}

	return resp, nil
}
