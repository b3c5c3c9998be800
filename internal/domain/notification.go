package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationCategory тип уведомления
type NotificationCategory string

const (
	NotificationBookingCreated   NotificationCategory = "booking_created"
	NotificationBookingConfirmed NotificationCategory = "booking_confirmed"
	NotificationBookingCancelled NotificationCategory = "booking_cancelled"
	NotificationPaymentReceived  NotificationCategory = "payment_received"
)

// NotificationCategoryForReminder уведомление для категории напоминания
func NotificationCategoryForReminder(c ReminderCategory) NotificationCategory {
	return NotificationCategory(c)
}

// Notification сообщение для внешнего канала доставки
type Notification struct {
	ID        uuid.UUID
	BookingID int64
	Category  NotificationCategory
	Recipient string
	Payload   map[string]string
	CreatedAt time.Time
}

// NewNotification создает уведомление с новым идентификатором
func NewNotification(b *Booking, category NotificationCategory, payload map[string]string, now time.Time) Notification {
	if payload == nil {
		payload = map[string]string{}
	}
	payload["guest_name"] = b.Guest.Name
	payload["check_in"] = b.CheckIn.String()
	payload["check_out"] = b.CheckOut.String()

	return Notification{
		ID:        uuid.New(),
		BookingID: b.ID,
		Category:  category,
		Recipient: b.Guest.Email,
		Payload:   payload,
		CreatedAt: now,
	}
}
