package payments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежных данных
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.PaymentDetail) (*domain.PaymentDetail, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.PaymentDetail, error)
	Update(ctx context.Context, p *domain.PaymentDetail) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
