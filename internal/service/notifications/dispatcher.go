package notifications

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Dispatcher передает уведомления в канал доставки, логирует и считает результат
// Повторов нет: ошибка возвращается вызывающему, переход статуса не откатывается
type Dispatcher struct {
	sink    Sink
	metrics Metrics
	logger  Logger
}

// NewDispatcher создает диспетчер уведомлений
func NewDispatcher(sink Sink, metrics Metrics, logger Logger) *Dispatcher {
	return &Dispatcher{
		sink:    sink,
		metrics: metrics,
		logger:  logger,
	}
}

// Notify отправляет одно уведомление
func (d *Dispatcher) Notify(ctx context.Context, n domain.Notification) error {
	if err := d.sink.Notify(ctx, n); err != nil {
		d.metrics.IncNotification(string(n.Category), "failed")
		d.logger.Error("Notify: failed to deliver %s for booking id=%d, notification=%s: %v",
			n.Category, n.BookingID, n.ID, err)
		return err
	}

	d.metrics.IncNotification(string(n.Category), "sent")
	d.logger.Info("Notify: %s delivered for booking id=%d, notification=%s", n.Category, n.BookingID, n.ID)
	return nil
}
