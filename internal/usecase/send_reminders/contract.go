package send_reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// ReminderLog журнал отправленных напоминаний (booking, category, run_date)
type ReminderLog interface {
	// Claim возвращает false, если напоминание за эту дату уже отправлено
	Claim(ctx context.Context, bookingID int64, category domain.ReminderCategory, runDate types.Date) (bool, error)
	Release(ctx context.Context, bookingID int64, category domain.ReminderCategory, runDate types.Date) error
}

// Notifier отправка уведомлений
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// Metrics метрики запусков
type Metrics interface {
	IncReminderRun(category, trigger string)
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
