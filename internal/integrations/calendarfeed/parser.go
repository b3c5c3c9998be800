package calendarfeed

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	ics "github.com/arran4/golang-ical"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

const (
	icalDate        = "20060102"
	icalDateTime    = "20060102T150405"
	icalDateTimeUTC = "20060102T150405Z"
	statusCancelled = "CANCELLED"
)

// Event бронь из фида OTA: ночи [Start, End)
type Event struct {
	UID     string
	Start   types.Date
	End     types.Date
	Summary string
}

// Parser разбирает iCal фиды, даты приводятся к часовому поясу отеля
type Parser struct {
	location *time.Location
}

// NewParser создает парсер для часового пояса отеля
func NewParser(location *time.Location) *Parser {
	if location == nil {
		location = time.UTC
	}
	return &Parser{location: location}
}

// Parse возвращает события фида
// Ошибка в любом событии отклоняет весь фид, отмененные события пропускаются
func (p *Parser) Parse(body string) ([]Event, error) {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(strings.ToUpper(trimmed), "BEGIN:VCALENDAR") {
		return nil, fmt.Errorf("%w: body is not a calendar", domain.ErrFeedParse)
	}
	// Обрезанная загрузка выглядит как фид без части броней
	if !strings.HasSuffix(strings.ToUpper(trimmed), "END:VCALENDAR") {
		return nil, fmt.Errorf("%w: calendar is truncated", domain.ErrFeedParse)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedParse, err)
	}

	var events []Event
	for i, ev := range cal.Events() {
		if status := ev.GetProperty(ics.ComponentPropertyStatus); status != nil &&
			strings.EqualFold(status.Value, statusCancelled) {
			continue
		}

		event, err := p.parseEvent(ev)
		if err != nil {
			return nil, fmt.Errorf("%w: event #%d: %v", domain.ErrFeedParse, i, err)
		}
		events = append(events, event)
	}

	return events, nil
}

func (p *Parser) parseEvent(ev *ics.VEvent) (Event, error) {
	uid := strings.TrimSpace(ev.Id())
	if uid == "" {
		return Event{}, fmt.Errorf("missing UID")
	}
	if rid := ev.GetProperty(ics.ComponentPropertyRecurrenceId); rid != nil {
		uid = uid + "/" + rid.Value
	}

	startProp := ev.GetProperty(ics.ComponentPropertyDtStart)
	if startProp == nil {
		return Event{}, fmt.Errorf("uid=%s: missing DTSTART", uid)
	}
	start, err := ParseDateValue(startProp.Value, startProp.ICalParameters, p.location)
	if err != nil {
		return Event{}, fmt.Errorf("uid=%s: DTSTART: %w", uid, err)
	}

	end := start.AddDays(1)
	if endProp := ev.GetProperty(ics.ComponentPropertyDtEnd); endProp != nil {
		end, err = ParseDateValue(endProp.Value, endProp.ICalParameters, p.location)
		if err != nil {
			return Event{}, fmt.Errorf("uid=%s: DTEND: %w", uid, err)
		}
	}

	switch {
	case end.Before(start):
		return Event{}, fmt.Errorf("uid=%s: DTEND %s before DTSTART %s", uid, end, start)
	case end == start:
		// Событие внутри одного дня занимает одну ночь
		end = start.AddDays(1)
	}

	var summary string
	if s := ev.GetProperty(ics.ComponentPropertySummary); s != nil {
		summary = ics.FromText(s.Value)
	}
	summary = truncateUTF8(summary, domain.MaxHoldNoteLength)

	return Event{UID: uid, Start: start, End: end, Summary: summary}, nil
}

// truncateUTF8 обрезает строку до limit байт, не разрывая символ
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// ParseDateValue разбирает значение DTSTART/DTEND в дату отеля
// Поддерживаются DATE (20260115), плавающее DATE-TIME, DATE-TIME в UTC (Z) и DATE-TIME с TZID
func ParseDateValue(value string, params map[string][]string, hotel *time.Location) (types.Date, error) {
	value = strings.TrimSpace(value)
	if hotel == nil {
		hotel = time.UTC
	}

	if v := param(params, string(ics.ParameterValue)); strings.EqualFold(v, "DATE") || len(value) == len(icalDate) {
		t, err := time.Parse(icalDate, value)
		if err != nil {
			return types.Date{}, fmt.Errorf("invalid DATE %q: %v", value, err)
		}
		return types.DateOf(t), nil
	}

	if strings.HasSuffix(value, "Z") {
		t, err := time.Parse(icalDateTimeUTC, value)
		if err != nil {
			return types.Date{}, fmt.Errorf("invalid UTC DATE-TIME %q: %v", value, err)
		}
		return types.DateOf(t.In(hotel)), nil
	}

	loc := hotel
	if tzid := param(params, string(ics.ParameterTzid)); tzid != "" {
		l, err := time.LoadLocation(strings.Trim(tzid, `"`))
		if err != nil {
			return types.Date{}, fmt.Errorf("unknown TZID %q: %v", tzid, err)
		}
		loc = l
	}

	t, err := time.ParseInLocation(icalDateTime, value, loc)
	if err != nil {
		return types.Date{}, fmt.Errorf("invalid DATE-TIME %q: %v", value, err)
	}
	return types.DateOf(t.In(hotel)), nil
}

func param(params map[string][]string, name string) string {
	for k, v := range params {
		if strings.EqualFold(k, name) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
