package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/usecase/import_holds"
	"github.com/m04kA/SMC-HotelService/internal/usecase/send_reminders"
)

// Драйверы хранилища
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

var (
	// ErrRead ошибка чтения файла конфигурации
	ErrRead = errors.New("config: failed to read file")

	// ErrInvalid конфигурация не прошла валидацию
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig     `toml:"server"`
	Database  DatabaseConfig   `toml:"database"`
	Logs      LogsConfig       `toml:"logs"`
	Metrics   MetricsConfig    `toml:"metrics"`
	Hotel     HotelConfig      `toml:"hotel"`
	Reminders RemindersConfig  `toml:"reminders"`
	Import    ImportConfig     `toml:"import"`
	Kafka     KafkaConfig      `toml:"kafka"`
	RoomTypes []RoomTypeConfig `toml:"room_types" validate:"dive"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"gt=0"`
	WriteTimeout    int `toml:"write_timeout" validate:"gt=0"`
	IdleTimeout     int `toml:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig параметры хранилища
// Для драйвера memory параметры подключения не нужны
type DatabaseConfig struct {
	Driver          string `toml:"driver" validate:"oneof=memory postgres"`
	Host            string `toml:"host" validate:"required_if=Driver postgres"`
	Port            int    `toml:"port" validate:"required_if=Driver postgres,max=65535"`
	User            string `toml:"user" validate:"required_if=Driver postgres"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required_if=Driver postgres"`
	SSLMode         string `toml:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"gte=0"`
	Migrate         bool   `toml:"migrate"`
}

// DSN строка подключения lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name" validate:"required_if=Enabled true"`
	Path        string `toml:"path" validate:"required_if=Enabled true"`
}

// HotelConfig параметры отеля
type HotelConfig struct {
	Timezone    string `toml:"timezone" validate:"required,timezone"`
	Currency    string `toml:"currency" validate:"required,len=3"`
	BankName    string `toml:"bank_name" validate:"required"`
	BankAccount string `toml:"bank_account" validate:"required"`
}

// Settings параметры отеля для сервисов
func (c HotelConfig) Settings() (domain.HotelSettings, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return domain.HotelSettings{}, fmt.Errorf("%w: hotel.timezone %q: %v", ErrInvalid, c.Timezone, err)
	}
	return domain.HotelSettings{
		Location:    loc,
		Currency:    c.Currency,
		BankName:    c.BankName,
		BankAccount: c.BankAccount,
	}, nil
}

// RemindersConfig параметры ежедневных напоминаний
type RemindersConfig struct {
	Enabled                bool   `toml:"enabled"`
	DailyAt                string `toml:"daily_at" validate:"required,datetime=15:04"`
	ConfirmationAfterHours int    `toml:"confirmation_after_hours" validate:"gt=0"`
	PaymentGraceDays       int    `toml:"payment_grace_days" validate:"gt=0"`
	TimeoutSeconds         int    `toml:"timeout_seconds" validate:"gt=0"`
}

// UseCaseConfig пороги категорий напоминаний
func (c RemindersConfig) UseCaseConfig() send_reminders.Config {
	return send_reminders.Config{
		ConfirmationAfter: time.Duration(c.ConfirmationAfterHours) * time.Hour,
		PaymentGraceDays:  c.PaymentGraceDays,
	}
}

// ImportConfig параметры импорта календарей OTA
type ImportConfig struct {
	Enabled         bool         `toml:"enabled"`
	IntervalMinutes int          `toml:"interval_minutes" validate:"gt=0"`
	TimeoutSeconds  int          `toml:"timeout_seconds" validate:"gt=0"`
	Feeds           []FeedConfig `toml:"feeds" validate:"dive"`
}

// FeedConfig один календарь OTA
type FeedConfig struct {
	Source     string `toml:"source" validate:"required,max=64"`
	URL        string `toml:"url" validate:"required,url"`
	RoomTypeID *int64 `toml:"room_type_id" validate:"omitempty,gt=0"`
}

// UseCaseFeeds фиды для импорта
func (c ImportConfig) UseCaseFeeds() []import_holds.Feed {
	feeds := make([]import_holds.Feed, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		feeds = append(feeds, import_holds.Feed{Source: f.Source, URL: f.URL, RoomTypeID: f.RoomTypeID})
	}
	return feeds
}

// KafkaConfig параметры канала уведомлений
// Если выключено, уведомления пишутся в лог
type KafkaConfig struct {
	Enabled  bool     `toml:"enabled"`
	Brokers  []string `toml:"brokers" validate:"required_if=Enabled true"`
	Topic    string   `toml:"topic" validate:"required_if=Enabled true"`
	ClientID string   `toml:"client_id"`
}

// RoomTypeConfig тип номера из каталога
type RoomTypeConfig struct {
	ID          int64  `toml:"id" validate:"gt=0"`
	Name        string `toml:"name" validate:"required,max=100"`
	TotalRooms  int    `toml:"total_rooms" validate:"gte=0"`
	MaxGuests   int    `toml:"max_guests" validate:"gte=1"`
	WeekdayRate string `toml:"weekday_rate" validate:"required,numeric"`
	WeekendRate string `toml:"weekend_rate" validate:"required,numeric"`
	Inactive    bool   `toml:"inactive"`
}

// ToDomain конвертирует запись каталога в тип номера
func (c RoomTypeConfig) ToDomain() (*domain.RoomType, error) {
	weekday, err := decimal.NewFromString(c.WeekdayRate)
	if err != nil {
		return nil, fmt.Errorf("%w: room type %d weekday_rate: %v", ErrInvalid, c.ID, err)
	}
	weekend, err := decimal.NewFromString(c.WeekendRate)
	if err != nil {
		return nil, fmt.Errorf("%w: room type %d weekend_rate: %v", ErrInvalid, c.ID, err)
	}
	return &domain.RoomType{
		ID:          c.ID,
		Name:        c.Name,
		TotalRooms:  c.TotalRooms,
		MaxGuests:   c.MaxGuests,
		WeekdayRate: weekday,
		WeekendRate: weekend,
		Active:      !c.Inactive,
	}, nil
}

// Default значения по умолчанию, перекрываемые файлом
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverMemory,
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			Migrate:         true,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "hotel_service",
			Path:        "/metrics",
		},
		Hotel: HotelConfig{
			Timezone: "Asia/Taipei",
			Currency: domain.DefaultCurrency,
		},
		Reminders: RemindersConfig{
			Enabled:                true,
			DailyAt:                "09:00",
			ConfirmationAfterHours: domain.DefaultConfirmationReminderHours,
			PaymentGraceDays:       domain.DefaultPaymentGraceDays,
			TimeoutSeconds:         300,
		},
		Import: ImportConfig{
			IntervalMinutes: 30,
			TimeoutSeconds:  60,
		},
		Kafka: KafkaConfig{
			Topic:    "hotel.notifications",
			ClientID: "hotel-service",
		},
	}
}

// Load читает конфигурацию из toml файла, применяет переменные окружения и валидирует
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	sources := make(map[string]struct{}, len(c.Import.Feeds))
	for _, f := range c.Import.Feeds {
		if _, dup := sources[f.Source]; dup {
			return fmt.Errorf("%w: duplicate feed source %q", ErrInvalid, f.Source)
		}
		sources[f.Source] = struct{}{}
	}

	ids := make(map[int64]struct{}, len(c.RoomTypes))
	for _, rt := range c.RoomTypes {
		if _, dup := ids[rt.ID]; dup {
			return fmt.Errorf("%w: duplicate room type id %d", ErrInvalid, rt.ID)
		}
		ids[rt.ID] = struct{}{}
	}

	return nil
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DB_PORT %q: %v", ErrInvalid, v, err)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logs.Level = strings.ToLower(v)
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers := make([]string, 0)
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.Kafka.Brokers = brokers
	}
	return nil
}
