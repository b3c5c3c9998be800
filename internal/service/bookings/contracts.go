package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
// Внутри транзакции GetByID блокирует строку до конца транзакции
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason *string, at time.Time) error
}

// Ledger реестр доступности
type Ledger interface {
	Release(ctx context.Context, roomTypeID int64, stay domain.DateRange) error
}

// PaymentService сверка платежей
type PaymentService interface {
	Open(ctx context.Context, booking *domain.Booking, method domain.PaymentMethod) (*domain.PaymentDetail, error)
	SubmitFragment(ctx context.Context, bookingID int64, fragment string) (*domain.PaymentDetail, error)
	ConfirmReceipt(ctx context.Context, bookingID int64) (*domain.PaymentDetail, error)
	MarkReceivedOnSite(ctx context.Context, bookingID int64) (*domain.PaymentDetail, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.PaymentDetail, error)
}

// Notifier отправка уведомлений
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики переходов
type Metrics interface {
	IncBookingTransition(action, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
