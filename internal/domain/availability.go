package domain

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// AvailabilityDay счетчики инвентаря типа номера на дату
// Инвариант: Committed + ExternalHold <= Capacity
type AvailabilityDay struct {
	RoomTypeID   int64
	Date         types.Date
	Capacity     int
	Committed    int
	ExternalHold int
}

// Used занятые номера
func (d *AvailabilityDay) Used() int {
	return d.Committed + d.ExternalHold
}

// Remaining свободные номера, не меньше нуля
func (d *AvailabilityDay) Remaining() int {
	if r := d.Capacity - d.Used(); r > 0 {
		return r
	}
	return 0
}

// CanAccept true, если на дату помещается еще n номеров
func (d *AvailabilityDay) CanAccept(n int) bool {
	return d.Used()+n <= d.Capacity
}

// IsFull true, если свободных номеров нет
func (d *AvailabilityDay) IsFull() bool {
	return d.Remaining() == 0
}

// OccupancyRate процент занятости (0-100)
func (d *AvailabilityDay) OccupancyRate() float64 {
	if d.Capacity == 0 {
		return 0
	}
	return float64(d.Used()) / float64(d.Capacity) * 100
}

// CapacityCheck результат проверки вместимости на диапазон
type CapacityCheck struct {
	Available     bool
	FirstConflict *types.Date
}

// RateKind тариф ночи
type RateKind string

const (
	RateWeekday RateKind = "weekday"
	RateWeekend RateKind = "weekend"
	RateHoliday RateKind = "holiday"
)

// NightlyRate цена одной ночи
type NightlyRate struct {
	Date        types.Date
	Price       decimal.Decimal
	Kind        RateKind
	HolidayName string
}

// StayQuote расчет стоимости проживания
type StayQuote struct {
	RoomTypeID int64
	Stay       DateRange
	Nights     []NightlyRate
	Total      decimal.Decimal
}
