package notifications

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Sink внешний канал доставки (Kafka, лог)
type Sink interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// Metrics метрики уведомлений
type Metrics interface {
	IncNotification(category, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
