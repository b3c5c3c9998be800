package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// RoomTypeRepository интерфейс каталога категорий номеров
type RoomTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomType, error)
}

// Ledger реестр доступности и цены
type Ledger interface {
	QuoteStay(ctx context.Context, roomTypeID int64, stay domain.DateRange) (*domain.StayQuote, error)
	Reserve(ctx context.Context, roomTypeID int64, stay domain.DateRange) error
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
