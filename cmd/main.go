package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/cancel_booking"
	checkInBookingHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/check_in_booking"
	confirmBookingHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/confirm_booking"
	confirmPaymentHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/get_booking"
	getBookingStatusHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/get_booking_status"
	getPriceHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/get_price"
	importHoldsHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/import_holds"
	listBookingsHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/list_bookings"
	removeHolidayOverrideHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/remove_holiday_override"
	runRemindersHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/run_reminders"
	selectPaymentMethodHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/select_payment_method"
	setHolidayOverrideHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/set_holiday_override"
	submitPaymentFragmentHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/submit_payment_fragment"
	"github.com/m04kA/SMC-HotelService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelService/internal/config"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/integrations/calendarfeed"
	"github.com/m04kA/SMC-HotelService/internal/integrations/notifier"
	"github.com/m04kA/SMC-HotelService/internal/scheduler"
	availabilityService "github.com/m04kA/SMC-HotelService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-HotelService/internal/service/bookings"
	"github.com/m04kA/SMC-HotelService/internal/service/holidays"
	"github.com/m04kA/SMC-HotelService/internal/service/notifications"
	paymentsService "github.com/m04kA/SMC-HotelService/internal/service/payments"
	createBookingUC "github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-HotelService/internal/usecase/get_availability"
	importHoldsUC "github.com/m04kA/SMC-HotelService/internal/usecase/import_holds"
	sendRemindersUC "github.com/m04kA/SMC-HotelService/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
	"github.com/m04kA/SMC-HotelService/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-HotelService...")
	log.Info("Configuration loaded from %s", configPath)

	settings, err := cfg.Hotel.Settings()
	if err != nil {
		log.Fatal("Invalid hotel settings: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var repos *repositories
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		repos, err = newPostgresRepositories(cfg.Database, metricsCollector, log)
		if err != nil {
			log.Fatal("Failed to initialize postgres storage: %v", err)
		}
	default:
		repos = newMemoryRepositories()
		log.Warn("Using in-memory storage, data is lost on restart")
	}
	defer repos.close()

	if err := seedRoomTypes(context.Background(), repos.roomTypes, cfg.RoomTypes, log); err != nil {
		log.Fatal("Failed to load room types: %v", err)
	}

	// Канал уведомлений
	var sink notifications.Sink
	if cfg.Kafka.Enabled {
		producer, err := notifier.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.ClientID)
		if err != nil {
			log.Fatal("Failed to create kafka producer: %v", err)
		}
		kafkaSink := notifier.NewKafkaSink(producer, cfg.Kafka.Topic, log)
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("Notifications are published to kafka topic=%s, brokers=%v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	} else {
		sink = notifier.NewLogSink(log)
		log.Info("Kafka disabled, notifications are written to the log")
	}
	dispatcher := notifications.NewDispatcher(sink, metricsCollector, log)

	// Инициализируем сервисы
	ledger := availabilityService.NewService(
		repos.roomTypes,
		repos.days,
		repos.holds,
		repos.overrides,
		holidays.NewCalendar(),
		repos.txManager,
		metricsCollector,
		log,
	)
	paymentSvc := paymentsService.NewService(
		repos.payments,
		repos.bookings,
		repos.txManager,
		settings,
		log,
	)
	bookingSvc := bookingsService.NewService(
		repos.bookings,
		ledger,
		paymentSvc,
		dispatcher,
		repos.txManager,
		settings,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		repos.bookings,
		repos.roomTypes,
		ledger,
		dispatcher,
		repos.txManager,
		settings,
		metricsCollector,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(ledger, settings, log)
	sendRemindersUseCase := sendRemindersUC.NewUseCase(
		repos.bookings,
		repos.reminderLog,
		dispatcher,
		settings,
		cfg.Reminders.UseCaseConfig(),
		metricsCollector,
		log,
	)
	importHoldsUseCase := importHoldsUC.NewUseCase(
		cfg.Import.UseCaseFeeds(),
		calendarfeed.NewClient(time.Duration(cfg.Import.TimeoutSeconds)*time.Second, log),
		calendarfeed.NewParser(settings.Location),
		repos.holds,
		ledger,
		repos.txManager,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingStatus := getBookingStatusHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	selectPaymentMethod := selectPaymentMethodHandler.NewHandler(bookingSvc, log)
	submitPaymentFragment := submitPaymentFragmentHandler.NewHandler(bookingSvc, log)
	confirmPayment := confirmPaymentHandler.NewHandler(bookingSvc, log)
	checkInBooking := checkInBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getPrice := getPriceHandler.NewHandler(getAvailabilityUseCase, log)
	setHolidayOverride := setHolidayOverrideHandler.NewHandler(ledger, log)
	removeHolidayOverride := removeHolidayOverrideHandler.NewHandler(ledger, log)
	runReminders := runRemindersHandler.NewHandler(sendRemindersUseCase, log)
	importHolds := importHoldsHandler.NewHandler(importHoldsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r.Use(middleware.RecoveryMiddleware(log))

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := repos.ping(req.Context()); err != nil {
			log.Error("GET /health - Storage unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "хранилище недоступно")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность и цены ---
	api.HandleFunc("/room-types/{roomTypeId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/room-types/{roomTypeId}/price", getPrice.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", getBookingStatus.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/payment-method", selectPaymentMethod.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/payment/fragment", submitPaymentFragment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/payment/confirm", confirmPayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/check-in", checkInBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Администрирование ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/holidays/{date}", setHolidayOverride.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/holidays/{date}", removeHolidayOverride.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/jobs/reminders/{category}", runReminders.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/jobs/import-holds", importHolds.Handle).Methods(http.MethodPost)

	// Фоновые задачи
	var tasks []scheduler.Task
	if cfg.Import.Enabled && len(cfg.Import.Feeds) > 0 {
		tasks = append(tasks, scheduler.Task{
			Name:       "import_holds",
			Schedule:   scheduler.Every(time.Duration(cfg.Import.IntervalMinutes) * time.Minute),
			Timeout:    time.Duration(cfg.Import.TimeoutSeconds) * time.Second * time.Duration(len(cfg.Import.Feeds)),
			RunOnStart: true,
			Run: func(ctx context.Context) error {
				_, err := importHoldsUseCase.Execute(ctx, &importHoldsUC.Request{})
				return err
			},
		})
	}
	if cfg.Reminders.Enabled {
		hour, minute, err := scheduler.ParseClock(cfg.Reminders.DailyAt)
		if err != nil {
			log.Fatal("Invalid reminders.daily_at: %v", err)
		}
		tasks = append(tasks, scheduler.Task{
			Name:     "send_reminders",
			Schedule: scheduler.DailyAt(hour, minute, settings.Location),
			Timeout:  time.Duration(cfg.Reminders.TimeoutSeconds) * time.Second,
			Run: func(ctx context.Context) error {
				_, err := sendRemindersUseCase.ExecuteAll(ctx, domain.TriggerSchedule)
				return err
			},
		})
	}

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		if err := scheduler.New(log, tasks...).Start(schedulerCtx); err != nil {
			log.Error("Scheduler stopped with error: %v", err)
		}
	}()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopScheduler()
	<-schedulerDone
	log.Info("Background tasks stopped")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
