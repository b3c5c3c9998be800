package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending        BookingStatus = "pending"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusPaymentPending BookingStatus = "payment_pending"
	StatusPaid           BookingStatus = "paid"
	StatusCashOnSite     BookingStatus = "cash_on_site"
	StatusCompleted      BookingStatus = "completed"
	StatusCancelled      BookingStatus = "cancelled"
)

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusPaymentPending,
	StatusPaid,
	StatusCashOnSite,
	StatusCompleted,
	StatusCancelled,
}

// IsValid проверяет, что статус входит в перечисление
func (s BookingStatus) IsValid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsTerminal true для completed и cancelled
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParseBookingStatus конвертирует строку в BookingStatus с валидацией
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// PaymentMethod способ оплаты, выбранный гостем
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCashOnSite   PaymentMethod = "cash_on_site"
)

// IsValid проверяет способ оплаты
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodBankTransfer || m == PaymentMethodCashOnSite
}

// GuestInfo контактные данные гостя
type GuestInfo struct {
	Name  string
	Email string
	Phone string
}

// Booking бронирование номера
// Никогда не удаляется: отмена это терминальный статус
type Booking struct {
	ID         int64
	RoomTypeID int64
	Guest      GuestInfo
	CheckIn    types.Date
	CheckOut   types.Date // не включительно
	GuestCount int
	TotalPrice decimal.Decimal
	Status     BookingStatus

	SpecialRequests *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stay возвращает диапазон ночей [CheckIn, CheckOut)
func (b *Booking) Stay() DateRange {
	return DateRange{Start: b.CheckIn, End: b.CheckOut}
}

// IsActive true, если бронирование удерживает номер
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled true для отмененного бронирования
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsTerminal true, если статус больше не меняется
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// BookingFilter фильтр выборки бронирований
// Пустые поля не ограничивают выборку
type BookingFilter struct {
	Statuses   []BookingStatus
	RoomTypeID *int64
	CheckInOn  *types.Date
	CheckOutOn *types.Date
}
