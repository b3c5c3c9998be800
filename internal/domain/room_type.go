package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomType категория номеров, продаваемая как единица инвентаря
type RoomType struct {
	ID          int64
	Name        string
	TotalRooms  int // продаваемая вместимость на каждую дату
	MaxGuests   int
	WeekdayRate decimal.Decimal
	WeekendRate decimal.Decimal // также применяется в праздники
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanHost проверяет количество гостей
func (rt *RoomType) CanHost(guests int) bool {
	return guests >= MinGuestCount && guests <= rt.MaxGuests
}
