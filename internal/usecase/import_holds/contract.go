package import_holds

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/integrations/calendarfeed"
)

// FeedClient загрузка фида
type FeedClient interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FeedParser разбор фида в события
type FeedParser interface {
	Parse(body string) ([]calendarfeed.Event, error)
}

// HoldRepository интерфейс репозитория блокировок
type HoldRepository interface {
	ListBySource(ctx context.Context, source string) ([]*domain.ExternalHold, error)
}

// Ledger реестр доступности
type Ledger interface {
	ApplyExternalHold(ctx context.Context, hold *domain.ExternalHold) error
	ClearExternalHold(ctx context.Context, source, externalID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики импорта
type Metrics interface {
	IncHoldImportRun(source, result string)
	AddHoldChanges(source, change string, n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
