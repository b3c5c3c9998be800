package get_availability

import "github.com/shopspring/decimal"

// MaxRangeDays максимальная длина запрашиваемого периода
const MaxRangeDays = 92

// Request модель запроса календаря доступности
type Request struct {
	RoomTypeID int64
	From       string  // "2026-01-15", включается
	To         *string // "2026-02-15", не включается; по умолчанию From + 30 дней
}

// Day доступность и цена одной ночи
type Day struct {
	Date         string          // "2026-01-15"
	Capacity     int             // Всего номеров
	Committed    int             // Занято бронированиями
	ExternalHold int             // Занято OTA
	Remaining    int             // Свободно
	Price        decimal.Decimal // Цена ночи
	Kind         string          // weekday, weekend, holiday
	HolidayName  string          // Название праздника, если есть
}

// Response модель ответа с календарем доступности
type Response struct {
	RoomTypeID int64
	From       string
	To         string
	Days       []Day
}

// PriceRequest запрос цены на дату
type PriceRequest struct {
	RoomTypeID int64
	Date       string // "2026-01-15"
}

// PriceResponse цена ночи
type PriceResponse struct {
	RoomTypeID  int64
	Date        string
	Price       decimal.Decimal
	Kind        string
	HolidayName string
}
