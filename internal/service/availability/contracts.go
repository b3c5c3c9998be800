package availability

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/holidays"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// RoomTypeRepository интерфейс репозитория типов номеров
type RoomTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomType, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.RoomType, error)
}

// DayRepository интерфейс репозитория дневных счетчиков
// Строки хранят только committed и external_hold, вместимость берется из типа номера
type DayRepository interface {
	// LockDays создает недостающие строки и блокирует их до конца транзакции
	// Результат упорядочен по дате и содержит ровно len(dates) элементов
	LockDays(ctx context.Context, roomTypeID int64, dates []types.Date) ([]*domain.AvailabilityDay, error)
	// ListDays возвращает существующие строки в диапазоне [from, to)
	ListDays(ctx context.Context, roomTypeID int64, from, to types.Date) ([]*domain.AvailabilityDay, error)
	// AddCommitted изменяет committed на delta, не опускаясь ниже нуля
	AddCommitted(ctx context.Context, roomTypeID int64, dates []types.Date, delta int) error
	// AddExternalHold изменяет external_hold на delta, не опускаясь ниже нуля
	AddExternalHold(ctx context.Context, roomTypeID int64, dates []types.Date, delta int) error
}

// HoldRepository интерфейс репозитория внешних блокировок
type HoldRepository interface {
	Get(ctx context.Context, source, externalID string) (*domain.ExternalHold, error)
	Upsert(ctx context.Context, hold *domain.ExternalHold) error
	Delete(ctx context.Context, source, externalID string) error
}

// HolidayOverrideRepository интерфейс репозитория ручных пометок праздников
type HolidayOverrideRepository interface {
	ListRange(ctx context.Context, from, to types.Date) ([]domain.HolidayOverride, error)
	Upsert(ctx context.Context, override domain.HolidayOverride) error
	Delete(ctx context.Context, date types.Date) error
}

// HolidayCalendar праздничный календарь
type HolidayCalendar interface {
	Lookup(date types.Date, override *bool) (holidays.Holiday, bool)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики отказов по вместимости
type Metrics interface {
	IncCapacityRejection(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
