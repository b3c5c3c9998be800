package import_holds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-HotelService/internal/integrations/calendarfeed"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
	"github.com/m04kA/SMC-HotelService/internal/service/holidays"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
	"github.com/m04kA/SMC-HotelService/pkg/metrics"
	"github.com/m04kA/SMC-HotelService/pkg/ptr"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

type fakeClient struct {
	bodies map[string]string
	errs   map[string]error
}

func (c *fakeClient) Fetch(_ context.Context, url string) (string, error) {
	if err, ok := c.errs[url]; ok {
		return "", err
	}
	return c.bodies[url], nil
}

type env struct {
	uc     *UseCase
	client *fakeClient
	store  *memory.Store
	ledger *availability.Service
}

const (
	airbnbURL  = "https://ota.example/airbnb.ics"
	bookingURL = "https://ota.example/booking.ics"
)

func newEnv(t *testing.T, capacity int) *env {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	require.NoError(t, store.RoomTypes().Upsert(ctx, &domain.RoomType{
		ID:          1,
		Name:        "Deluxe Double",
		TotalRooms:  capacity,
		MaxGuests:   2,
		WeekdayRate: decimal.NewFromInt(2800),
		WeekendRate: decimal.NewFromInt(3600),
		Active:      true,
	}))

	var m *metrics.Metrics
	log := logger.NewNop()
	ledger := availability.NewService(store.RoomTypes(), store.Days(), store.Holds(), store.HolidayOverrides(),
		holidays.NewCalendar(), store.TxManager(), m, log)

	client := &fakeClient{bodies: map[string]string{}, errs: map[string]error{}}
	feeds := []Feed{
		{Source: "airbnb", URL: airbnbURL, RoomTypeID: ptr.Ptr(int64(1))},
		{Source: "booking", URL: bookingURL, RoomTypeID: ptr.Ptr(int64(1))},
	}

	uc := NewUseCase(feeds, client, calendarfeed.NewParser(time.UTC), store.Holds(), ledger, store.TxManager(), m, log)
	return &env{uc: uc, client: client, store: store, ledger: ledger}
}

// ics собирает фид из пар uid=start..end (даты в формате 20260115)
func ics(events ...string) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//OTA//EN\r\n")
	for _, e := range events {
		uid, dates, _ := strings.Cut(e, "=")
		start, end, _ := strings.Cut(dates, "..")
		fmt.Fprintf(&b, "BEGIN:VEVENT\r\nUID:%s\r\nDTSTART;VALUE=DATE:%s\r\nDTEND;VALUE=DATE:%s\r\nSUMMARY:Reserved\r\nEND:VEVENT\r\n",
			uid, start, end)
	}
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func (e *env) holdCounts(t *testing.T, from, to string) map[string]int {
	t.Helper()
	days, err := e.ledger.GetAvailability(context.Background(), 1, domain.DateRange{
		Start: types.MustParseDate(from),
		End:   types.MustParseDate(to),
	})
	require.NoError(t, err)
	result := make(map[string]int, len(days))
	for _, d := range days {
		result[d.Date.String()] = d.ExternalHold
	}
	return result
}

func (e *env) run(t *testing.T, source string) FeedResult {
	t.Helper()
	resp, err := e.uc.Execute(context.Background(), &Request{Source: source})
	require.NoError(t, err)
	require.Len(t, resp.Feeds, 1)
	return resp.Feeds[0]
}

func TestImport_SameFeedTwiceDoesNotDoubleCount(t *testing.T) {
	e := newEnv(t, 3)
	e.client.bodies[airbnbURL] = ics("HM1=20260115..20260117")

	first := e.run(t, "airbnb")
	assert.Equal(t, ResultOK, first.Result)
	assert.Equal(t, 1, first.Created)

	second := e.run(t, "airbnb")
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Unchanged)

	assert.Equal(t, map[string]int{"2026-01-15": 1, "2026-01-16": 1, "2026-01-17": 0},
		e.holdCounts(t, "2026-01-15", "2026-01-18"))
}

func TestImport_ShrunkRangeReleasesDroppedDates(t *testing.T) {
	e := newEnv(t, 3)
	e.client.bodies[airbnbURL] = ics("HM1=20260115..20260118")
	e.run(t, "airbnb")

	e.client.bodies[airbnbURL] = ics("HM1=20260115..20260116")
	result := e.run(t, "airbnb")
	assert.Equal(t, 1, result.Updated)

	assert.Equal(t, map[string]int{"2026-01-15": 1, "2026-01-16": 0, "2026-01-17": 0},
		e.holdCounts(t, "2026-01-15", "2026-01-18"))
}

func TestImport_MissingEventIsCleared(t *testing.T) {
	e := newEnv(t, 3)
	e.client.bodies[airbnbURL] = ics("HM1=20260115..20260116", "HM2=20260120..20260122")
	e.run(t, "airbnb")

	e.client.bodies[airbnbURL] = ics("HM2=20260120..20260122")
	result := e.run(t, "airbnb")
	assert.Equal(t, 1, result.Cleared)
	assert.Equal(t, 1, result.Unchanged)

	assert.Equal(t, 0, e.holdCounts(t, "2026-01-15", "2026-01-16")["2026-01-15"])
	assert.Equal(t, 1, e.holdCounts(t, "2026-01-20", "2026-01-21")["2026-01-20"])

	holds, err := e.store.Holds().ListBySource(context.Background(), "airbnb")
	require.NoError(t, err)
	require.Len(t, holds, 1)
	assert.Equal(t, "HM2", holds[0].ExternalID)
}

func TestImport_ParseFailureLeavesLedgerUntouched(t *testing.T) {
	e := newEnv(t, 3)
	e.client.bodies[airbnbURL] = ics("HM1=20260115..20260117")
	e.run(t, "airbnb")

	// Обрезанный ответ не должен снять блокировки
	e.client.bodies[airbnbURL] = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\n"
	result := e.run(t, "airbnb")
	assert.Equal(t, ResultParseFailed, result.Result)
	assert.NotEmpty(t, result.Error)

	assert.Equal(t, 1, e.holdCounts(t, "2026-01-15", "2026-01-16")["2026-01-15"])
	holds, err := e.store.Holds().ListBySource(context.Background(), "airbnb")
	require.NoError(t, err)
	assert.Len(t, holds, 1)
}

func TestImport_FetchFailureSkipsOnlyThatFeed(t *testing.T) {
	e := newEnv(t, 3)
	e.client.bodies[airbnbURL] = ics("HM1=20260115..20260117")
	e.run(t, "airbnb")

	e.client.errs[airbnbURL] = fmt.Errorf("%w: connection reset", domain.ErrFeedFetch)
	e.client.bodies[bookingURL] = ics("BK9=20260115..20260116")

	resp, err := e.uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	require.Len(t, resp.Feeds, 2)
	assert.Equal(t, ResultFetchFailed, resp.Feeds[0].Result)
	assert.Equal(t, ResultOK, resp.Feeds[1].Result)

	assert.Equal(t, 2, e.holdCounts(t, "2026-01-15", "2026-01-16")["2026-01-15"])
}

func TestImport_ConflictIsStoredAndRetried(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()
	stay := domain.DateRange{Start: types.MustParseDate("2026-01-15"), End: types.MustParseDate("2026-01-16")}
	require.NoError(t, e.ledger.Reserve(ctx, 1, stay))

	e.client.bodies[airbnbURL] = ics("HM1=20260115..20260116")
	first := e.run(t, "airbnb")
	assert.Equal(t, ResultOK, first.Result)
	assert.Equal(t, 1, first.Conflicts)
	assert.Equal(t, 0, first.Created)
	assert.Equal(t, 0, e.holdCounts(t, "2026-01-15", "2026-01-16")["2026-01-15"])

	hold, err := e.store.Holds().Get(ctx, "airbnb", "HM1")
	require.NoError(t, err)
	assert.False(t, hold.Applied)

	require.NoError(t, e.ledger.Release(ctx, 1, stay))

	second := e.run(t, "airbnb")
	assert.Equal(t, 1, second.Retried)
	assert.Equal(t, 0, second.Conflicts)
	assert.Equal(t, 1, e.holdCounts(t, "2026-01-15", "2026-01-16")["2026-01-15"])
}

func TestImport_UnknownSource(t *testing.T) {
	e := newEnv(t, 1)

	_, err := e.uc.Execute(context.Background(), &Request{Source: "expedia"})
	assert.ErrorIs(t, err, ErrUnknownFeed)
}

func TestImport_CancelledContextStops(t *testing.T) {
	e := newEnv(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := e.uc.Execute(ctx, &Request{})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, resp.Feeds)
}

func TestBuildPlan(t *testing.T) {
	feed := Feed{Source: "airbnb", RoomTypeID: ptr.Ptr(int64(1))}
	d := types.MustParseDate

	existing := []*domain.ExternalHold{
		{Source: "airbnb", ExternalID: "same", RoomTypeID: ptr.Ptr(int64(1)), Start: d("2026-01-01"), End: d("2026-01-02"), Applied: true},
		{Source: "airbnb", ExternalID: "moved", RoomTypeID: ptr.Ptr(int64(1)), Start: d("2026-01-05"), End: d("2026-01-07"), Applied: true},
		{Source: "airbnb", ExternalID: "pending", RoomTypeID: ptr.Ptr(int64(1)), Start: d("2026-01-10"), End: d("2026-01-11"), Applied: false},
		{Source: "airbnb", ExternalID: "gone", RoomTypeID: ptr.Ptr(int64(1)), Start: d("2026-01-20"), End: d("2026-01-21"), Applied: true},
	}
	events := []calendarfeed.Event{
		{UID: "same", Start: d("2026-01-01"), End: d("2026-01-02")},
		{UID: "moved", Start: d("2026-01-05"), End: d("2026-01-06")},
		{UID: "pending", Start: d("2026-01-10"), End: d("2026-01-11")},
		{UID: "new", Start: d("2026-01-12"), End: d("2026-01-13")},
		{UID: "new", Start: d("2026-01-14"), End: d("2026-01-15")},
	}

	p := buildPlan(feed, events, existing)

	kinds := make(map[string]changeKind)
	for _, c := range p.apply {
		kinds[c.hold.ExternalID] = c.kind
	}
	assert.Equal(t, map[string]changeKind{
		"same":    changeUnchanged,
		"moved":   changeUpdate,
		"pending": changeRetry,
		"new":     changeCreate,
	}, kinds)
	require.Len(t, p.apply, 4)
	assert.Equal(t, "2026-01-14", p.apply[3].hold.Start.String())

	require.Len(t, p.clear, 1)
	assert.Equal(t, "gone", p.clear[0].ExternalID)
}

func TestImport_ConflictingExtensionKeepsSoldNights(t *testing.T) {
	e := newEnv(t, 1)
	ctx := context.Background()

	e.client.bodies[airbnbURL] = ics("HM1=20260110..20260112")
	require.Equal(t, 1, e.run(t, "airbnb").Created)

	require.NoError(t, e.ledger.Reserve(ctx, 1, domain.DateRange{
		Start: types.MustParseDate("2026-01-12"),
		End:   types.MustParseDate("2026-01-13"),
	}))

	e.client.bodies[airbnbURL] = ics("HM1=20260110..20260113")
	second := e.run(t, "airbnb")
	assert.Equal(t, 1, second.Conflicts)
	assert.Equal(t, 0, second.Updated)

	assert.Equal(t, map[string]int{"2026-01-10": 1, "2026-01-11": 1, "2026-01-12": 0}, e.holdCounts(t, "2026-01-10", "2026-01-13"))

	err := e.ledger.Reserve(ctx, 1, domain.DateRange{
		Start: types.MustParseDate("2026-01-10"),
		End:   types.MustParseDate("2026-01-11"),
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestImport_CancellationFreesRoomForNewHoldInSameRun(t *testing.T) {
	e := newEnv(t, 1)

	e.client.bodies[airbnbURL] = ics("HM1=20260201..20260203")
	require.Equal(t, 1, e.run(t, "airbnb").Created)

	// HM1 отменен на OTA, а HM2 продан на те же ночи
	e.client.bodies[airbnbURL] = ics("HM2=20260201..20260203")
	second := e.run(t, "airbnb")
	assert.Equal(t, 1, second.Cleared)
	assert.Equal(t, 1, second.Created)
	assert.Equal(t, 0, second.Conflicts)

	saved, err := e.store.Holds().Get(context.Background(), "airbnb", "HM2")
	require.NoError(t, err)
	assert.True(t, saved.Applied)
	assert.Equal(t, map[string]int{"2026-02-01": 1, "2026-02-02": 1}, e.holdCounts(t, "2026-02-01", "2026-02-03"))
}
