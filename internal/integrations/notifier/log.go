package notifier

import (
	"context"
	"encoding/json"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// LogSink пишет уведомления в лог, используется без брокера
type LogSink struct {
	log Logger
}

// NewLogSink создает sink
func NewLogSink(log Logger) *LogSink {
	return &LogSink{log: log}
}

// Notify логирует уведомление
func (s *LogSink) Notify(_ context.Context, n domain.Notification) error {
	payload, _ := json.Marshal(n.Payload)
	s.log.Info("Notify: %s booking id=%d recipient=%s payload=%s", n.Category, n.BookingID, n.Recipient, payload)
	return nil
}
