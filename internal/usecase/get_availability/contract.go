package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// Ledger реестр доступности и цены
type Ledger interface {
	GetAvailability(ctx context.Context, roomTypeID int64, r domain.DateRange) ([]*domain.AvailabilityDay, error)
	QuoteStay(ctx context.Context, roomTypeID int64, stay domain.DateRange) (*domain.StayQuote, error)
	GetPriceForDate(ctx context.Context, roomTypeID int64, date types.Date) (*domain.NightlyRate, error)
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
