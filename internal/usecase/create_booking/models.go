package create_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	RoomTypeID      int64   `validate:"required,gt=0"`
	CheckIn         string  `validate:"required,datetime=2006-01-02"` // "2026-01-15"
	CheckOut        string  `validate:"required,datetime=2006-01-02"` // "2026-01-17", не включается
	GuestName       string  `validate:"required,max=100"`
	GuestEmail      string  `validate:"required,email"`
	GuestPhone      string  `validate:"omitempty,max=32"`
	GuestCount      int     `validate:"required,gte=1"`
	SpecialRequests *string `validate:"omitempty,max=500"`
}

// Night цена одной ночи
type Night struct {
	Date        string          // "2026-01-15"
	Price       decimal.Decimal // Цена ночи
	Kind        string          // weekday, weekend, holiday
	HolidayName string          // Название праздника, если есть
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64           // ID созданного бронирования
	RoomTypeID      int64           // ID категории номера
	GuestName       string          // Имя гостя
	GuestEmail      string          // Email гостя
	GuestPhone      string          // Телефон гостя
	CheckIn         string          // Дата заезда
	CheckOut        string          // Дата выезда
	GuestCount      int             // Количество гостей
	TotalPrice      decimal.Decimal // Итоговая цена
	Currency        string          // Валюта
	Status          string          // Статус бронирования
	SpecialRequests *string         // Пожелания гостя
	Nights          []Night         // Расшифровка цены по ночам

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
