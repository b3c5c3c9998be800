package run_reminders

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	sendReminders "github.com/m04kA/SMC-HotelService/internal/usecase/send_reminders"
)

type SendRemindersUseCase interface {
	Execute(ctx context.Context, req *sendReminders.Request) (*domain.ReminderRunRecord, error)
	ExecuteAll(ctx context.Context, trigger domain.ReminderTrigger) ([]*domain.ReminderRunRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
