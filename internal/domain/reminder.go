package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// ReminderCategory категория напоминаний
type ReminderCategory string

const (
	ReminderConfirmation   ReminderCategory = "confirmation_reminder"
	ReminderPaymentOverdue ReminderCategory = "payment_overdue"
	ReminderCheckIn        ReminderCategory = "check_in_reminder"
	ReminderCheckOutThanks ReminderCategory = "check_out_thank_you"
)

// AllReminderCategories порядок обработки категорий в ежедневном запуске
var AllReminderCategories = []ReminderCategory{
	ReminderConfirmation,
	ReminderPaymentOverdue,
	ReminderCheckIn,
	ReminderCheckOutThanks,
}

// ParseReminderCategory конвертирует строку в категорию
func ParseReminderCategory(s string) (ReminderCategory, error) {
	for _, c := range AllReminderCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrUnknownReminderCategory
}

// ReminderTrigger источник запуска
type ReminderTrigger string

const (
	TriggerSchedule ReminderTrigger = "schedule"
	TriggerManual   ReminderTrigger = "manual"
)

// ReminderRunRecord итог одного запуска по категории
type ReminderRunRecord struct {
	RunID      uuid.UUID
	Category   ReminderCategory
	Trigger    ReminderTrigger
	RunDate    types.Date // операционная дата в часовом поясе отеля
	Notified   []int64
	Skipped    []int64 // уже уведомлены сегодня
	Failed     []int64
	StartedAt  time.Time
	FinishedAt time.Time
}
