package notifier

import (
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Message сообщение в топике уведомлений
type Message struct {
	ID        string            `json:"id"`
	BookingID int64             `json:"booking_id"`
	Category  string            `json:"category"`
	Recipient string            `json:"recipient"`
	Payload   map[string]string `json:"payload"`
	CreatedAt time.Time         `json:"created_at"`
}

// FromDomain конвертирует уведомление в сообщение
func FromDomain(n domain.Notification) Message {
	return Message{
		ID:        n.ID.String(),
		BookingID: n.BookingID,
		Category:  string(n.Category),
		Recipient: n.Recipient,
		Payload:   n.Payload,
		CreatedAt: n.CreatedAt,
	}
}
