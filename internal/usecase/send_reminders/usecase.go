package send_reminders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// UseCase use case для рассылки напоминаний
type UseCase struct {
	bookingRepo  BookingRepository
	reminderLog  ReminderLog
	notifier     Notifier
	settings     domain.HotelSettings
	cfg          Config
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	reminderLog ReminderLog,
	notifier Notifier,
	settings domain.HotelSettings,
	cfg Config,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		reminderLog:  reminderLog,
		notifier:     notifier,
		settings:     settings,
		cfg:          cfg,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute рассылает напоминания одной категории
// Одна бронь получает не больше одного напоминания категории за операционный день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.ReminderRunRecord, error) {
	category, err := domain.ParseReminderCategory(req.Category)
	if err != nil {
		uc.logger.Warn("SendReminders: unknown category=%q", req.Category)
		return nil, err
	}
	trigger := req.Trigger
	if trigger == "" {
		trigger = domain.TriggerManual
	}

	now := uc.timeProvider.Now()
	record := &domain.ReminderRunRecord{
		RunID:     uuid.New(),
		Category:  category,
		Trigger:   trigger,
		RunDate:   uc.settings.Today(now),
		StartedAt: now,
	}
	at := Moment{Now: now, Today: record.RunDate}

	uc.logger.Info("SendReminders: run=%s category=%s trigger=%s date=%s",
		record.RunID, category, trigger, record.RunDate)

	candidates, err := uc.bookingRepo.List(ctx, candidateFilter(category, record.RunDate))
	if err != nil {
		uc.logger.Error("SendReminders: run=%s failed to list bookings: %v", record.RunID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %w", ErrInternal, err)
	}

	for _, b := range Select(category, candidates, at, uc.cfg) {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("SendReminders: run=%s interrupted: %v", record.RunID, err)
			return record, err
		}
		uc.remind(ctx, record, b)
	}

	record.FinishedAt = uc.timeProvider.Now()
	uc.metrics.IncReminderRun(string(category), string(trigger))
	uc.logger.Info("SendReminders: run=%s category=%s notified=%d skipped=%d failed=%d",
		record.RunID, category, len(record.Notified), len(record.Skipped), len(record.Failed))

	return record, nil
}

// ExecuteAll запускает все категории по порядку, ошибка категории не останавливает остальные
func (uc *UseCase) ExecuteAll(ctx context.Context, trigger domain.ReminderTrigger) ([]*domain.ReminderRunRecord, error) {
	records := make([]*domain.ReminderRunRecord, 0, len(domain.AllReminderCategories))
	var firstErr error

	for _, category := range domain.AllReminderCategories {
		record, err := uc.Execute(ctx, &Request{Category: string(category), Trigger: trigger})
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		records = append(records, record)
	}

	return records, firstErr
}

// remind захватывает запись журнала, отправляет уведомление, при ошибке освобождает запись
func (uc *UseCase) remind(ctx context.Context, record *domain.ReminderRunRecord, b *domain.Booking) {
	claimed, err := uc.reminderLog.Claim(ctx, b.ID, record.Category, record.RunDate)
	if err != nil {
		uc.logger.Error("SendReminders: run=%s claim failed for booking id=%d: %v", record.RunID, b.ID, err)
		record.Failed = append(record.Failed, b.ID)
		return
	}
	if !claimed {
		record.Skipped = append(record.Skipped, b.ID)
		return
	}

	n := domain.NewNotification(b, domain.NotificationCategoryForReminder(record.Category), uc.payload(record, b), record.StartedAt)
	if err := uc.notifier.Notify(ctx, n); err != nil {
		uc.logger.Warn("SendReminders: run=%s delivery failed for booking id=%d: %v", record.RunID, b.ID, err)
		if err := uc.reminderLog.Release(ctx, b.ID, record.Category, record.RunDate); err != nil {
			uc.logger.Error("SendReminders: run=%s failed to release claim for booking id=%d: %v", record.RunID, b.ID, err)
		}
		record.Failed = append(record.Failed, b.ID)
		return
	}

	record.Notified = append(record.Notified, b.ID)
}

func (uc *UseCase) payload(record *domain.ReminderRunRecord, b *domain.Booking) map[string]string {
	payload := map[string]string{
		"run_id": record.RunID.String(),
		"status": string(b.Status),
	}
	switch record.Category {
	case domain.ReminderConfirmation:
		payload["amount"] = b.TotalPrice.StringFixed(2)
		payload["currency"] = uc.settings.Currency
	case domain.ReminderPaymentOverdue:
		payload["amount"] = b.TotalPrice.StringFixed(2)
		payload["currency"] = uc.settings.Currency
		payload["bank_name"] = uc.settings.BankName
		payload["bank_account"] = uc.settings.BankAccount
	}
	return payload
}
