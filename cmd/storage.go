package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-HotelService/internal/config"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	holdRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/hold"
	holidayRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-HotelService/internal/infra/storage/memory"
	paymentRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/payment"
	reminderLogRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/reminderlog"
	roomTypeRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/roomtype"
	availabilityService "github.com/m04kA/SMC-HotelService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-HotelService/internal/service/bookings"
	paymentsService "github.com/m04kA/SMC-HotelService/internal/service/payments"
	createBookingUC "github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
	importHoldsUC "github.com/m04kA/SMC-HotelService/internal/usecase/import_holds"
	sendRemindersUC "github.com/m04kA/SMC-HotelService/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-HotelService/migrations"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
	"github.com/m04kA/SMC-HotelService/pkg/metrics"
	"github.com/m04kA/SMC-HotelService/pkg/txmanager"
)

// Интерфейсы ниже объединяют требования всех потребителей,
// чтобы memory и postgres реализации подставлялись одинаково

type txManager interface {
	availabilityService.TransactionManager
	bookingsService.TransactionManager
	paymentsService.TransactionManager
	createBookingUC.TransactionManager
	importHoldsUC.TransactionManager
}

type roomTypeRepository interface {
	availabilityService.RoomTypeRepository
	createBookingUC.RoomTypeRepository
	Upsert(ctx context.Context, rt *domain.RoomType) error
}

type bookingRepository interface {
	bookingsService.BookingRepository
	paymentsService.BookingRepository
	createBookingUC.BookingRepository
	sendRemindersUC.BookingRepository
}

type holdRepository interface {
	availabilityService.HoldRepository
	importHoldsUC.HoldRepository
}

// repositories хранилище, выбранное драйвером
type repositories struct {
	txManager   txManager
	roomTypes   roomTypeRepository
	bookings    bookingRepository
	days        availabilityService.DayRepository
	holds       holdRepository
	overrides   availabilityService.HolidayOverrideRepository
	payments    paymentsService.PaymentRepository
	reminderLog sendRemindersUC.ReminderLog

	// ping проверка хранилища для /health
	ping func(ctx context.Context) error
	// close освобождает соединения
	close func() error
}

func newMemoryRepositories() *repositories {
	store := memory.NewStore()
	return &repositories{
		txManager:   store.TxManager(),
		roomTypes:   store.RoomTypes(),
		bookings:    store.Bookings(),
		days:        store.Days(),
		holds:       store.Holds(),
		overrides:   store.HolidayOverrides(),
		payments:    store.Payments(),
		reminderLog: store.ReminderLog(),
		ping:        func(context.Context) error { return nil },
		close:       func() error { return nil },
	}
}

func newPostgresRepositories(cfg config.DatabaseConfig, m *metrics.Metrics, log *logger.Logger) (*repositories, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	if cfg.Migrate {
		if err := migrations.Up(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		log.Info("Database migrations applied")
	}

	return &repositories{
		txManager:   txmanager.NewTransactionManager(db, m, log),
		roomTypes:   roomTypeRepo.NewRepository(db),
		bookings:    bookingRepo.NewRepository(db),
		days:        availabilityRepo.NewRepository(db),
		holds:       holdRepo.NewRepository(db),
		overrides:   holidayRepo.NewRepository(db),
		payments:    paymentRepo.NewRepository(db),
		reminderLog: reminderLogRepo.NewRepository(db),
		ping:        db.PingContext,
		close:       db.Close,
	}, nil
}

// seedRoomTypes переносит каталог из конфигурации в хранилище
// Счетчики занятости при этом не меняются
func seedRoomTypes(ctx context.Context, repo roomTypeRepository, catalog []config.RoomTypeConfig, log *logger.Logger) error {
	for _, rc := range catalog {
		rt, err := rc.ToDomain()
		if err != nil {
			return err
		}
		if err := repo.Upsert(ctx, rt); err != nil {
			return fmt.Errorf("upsert room type %d: %w", rt.ID, err)
		}
		log.Info("Room type loaded: id=%d, name=%s, rooms=%d, active=%t", rt.ID, rt.Name, rt.TotalRooms, rt.Active)
	}
	return nil
}
