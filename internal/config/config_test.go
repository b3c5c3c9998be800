package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
[database]
driver = "postgres"
host = "db"
port = 5432
user = "hotel"
password = "file-secret"
dbname = "hotel"

[hotel]
timezone = "Asia/Taipei"
currency = "TWD"
bank_name = "Bank of Taiwan"
bank_account = "004-123-456789"

[reminders]
daily_at = "08:30"
payment_grace_days = 5

[[import.feeds]]
source = "booking_com"
url = "https://example.com/booking.ics"

[[import.feeds]]
source = "airbnb"
url = "https://example.com/airbnb.ics"
room_type_id = 1

[kafka]
enabled = true
brokers = ["kafka:9092"]

[[room_types]]
id = 1
name = "Double"
total_rooms = 2
max_guests = 2
weekday_rate = "2800"
weekend_rate = "3600.50"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "host=db port=5432 user=hotel password=file-secret dbname=hotel sslmode=disable", cfg.Database.DSN())

	uc := cfg.Reminders.UseCaseConfig()
	assert.Equal(t, 24*time.Hour, uc.ConfirmationAfter)
	assert.Equal(t, 5, uc.PaymentGraceDays)
	assert.Equal(t, "08:30", cfg.Reminders.DailyAt)

	feeds := cfg.Import.UseCaseFeeds()
	require.Len(t, feeds, 2)
	assert.Nil(t, feeds[0].RoomTypeID)
	require.NotNil(t, feeds[1].RoomTypeID)
	assert.Equal(t, int64(1), *feeds[1].RoomTypeID)

	require.Len(t, cfg.RoomTypes, 1)
	rt, err := cfg.RoomTypes[0].ToDomain()
	require.NoError(t, err)
	assert.True(t, rt.Active)
	assert.True(t, decimal.RequireFromString("3600.50").Equal(rt.WeekendRate))

	settings, err := cfg.Hotel.Settings()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Taipei", settings.Location.String())
	assert.Equal(t, "TWD", settings.Currency)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "env-secret")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_MemoryDriverNeedsNoConnection(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[hotel]
bank_name = "Bank of Taiwan"
bank_account = "004-123-456789"
`))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "Asia/Taipei", cfg.Hotel.Timezone)
}

func TestLoad_Invalid(t *testing.T) {
	const hotel = `
[hotel]
bank_name = "Bank of Taiwan"
bank_account = "004-123-456789"
`
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "postgres without host",
			content: hotel + "[database]\ndriver = \"postgres\"\nuser = \"u\"\ndbname = \"d\"\n",
		},
		{
			name:    "unknown driver",
			content: hotel + "[database]\ndriver = \"mysql\"\n",
		},
		{
			name:    "bad daily_at",
			content: hotel + "[reminders]\ndaily_at = \"25:00\"\n",
		},
		{
			name:    "unknown timezone",
			content: "[hotel]\ntimezone = \"Mars/Olympus\"\nbank_name = \"b\"\nbank_account = \"a\"\n",
		},
		{
			name:    "missing bank account",
			content: "[hotel]\nbank_name = \"b\"\n",
		},
		{
			name:    "kafka without brokers",
			content: hotel + "[kafka]\nenabled = true\n",
		},
		{
			name: "duplicate feed source",
			content: hotel + `
[[import.feeds]]
source = "ota"
url = "https://example.com/a.ics"
[[import.feeds]]
source = "ota"
url = "https://example.com/b.ics"
`,
		},
		{
			name: "non numeric rate",
			content: hotel + `
[[room_types]]
id = 1
name = "Double"
total_rooms = 2
max_guests = 2
weekday_rate = "cheap"
weekend_rate = "3600"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrRead)
}
