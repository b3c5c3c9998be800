package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelService/pkg/types"
)

var (
	// ErrInvalidTransition действие недопустимо в текущем статусе
	ErrInvalidTransition = errors.New("booking: invalid transition")

	// ErrCapacityExceeded на одну из дат нет свободных номеров
	ErrCapacityExceeded = errors.New("availability: capacity exceeded")

	// ErrInvalidFormat фрагмент перевода не является пятью цифрами
	ErrInvalidFormat = errors.New("payment: invalid fragment format")

	// ErrMissingFragment подтверждение оплаты без присланного фрагмента
	ErrMissingFragment = errors.New("payment: transfer fragment was not submitted")

	// ErrFeedFetch не удалось загрузить календарь
	ErrFeedFetch = errors.New("feed: fetch failed")

	// ErrFeedParse календарь не удалось разобрать
	ErrFeedParse = errors.New("feed: parse failed")

	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("booking: not found")

	// ErrRoomTypeNotFound тип номера не найден
	ErrRoomTypeNotFound = errors.New("room type: not found")

	// ErrPaymentNotFound у бронирования нет платежных данных
	ErrPaymentNotFound = errors.New("payment: not found")

	// ErrHoldNotFound внешняя блокировка не найдена
	ErrHoldNotFound = errors.New("external hold: not found")

	// ErrInvalidDateRange выезд не позже заезда
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidStatus неизвестный статус
	ErrInvalidStatus = errors.New("booking: invalid status")

	// ErrInvalidPaymentMethod неизвестный способ оплаты
	ErrInvalidPaymentMethod = errors.New("payment: invalid method")

	// ErrUnknownReminderCategory неизвестная категория напоминаний
	ErrUnknownReminderCategory = errors.New("reminder: unknown category")
)

// CapacityError отказ по вместимости с первой конфликтной датой
type CapacityError struct {
	RoomTypeID int64
	Date       types.Date
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: room_type=%d date=%s", ErrCapacityExceeded, e.RoomTypeID, e.Date)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}
