package send_reminders

import (
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Config пороги категорий напоминаний
type Config struct {
	ConfirmationAfter time.Duration // pending дольше этого срока получает напоминание
	PaymentGraceDays  int           // payment_pending дольше grace*24h считается просроченным
}

// DefaultConfig значения по умолчанию
func DefaultConfig() Config {
	return Config{
		ConfirmationAfter: domain.DefaultConfirmationReminderHours * time.Hour,
		PaymentGraceDays:  domain.DefaultPaymentGraceDays,
	}
}

// Request модель запроса на запуск категории
type Request struct {
	Category string
	Trigger  domain.ReminderTrigger
}
