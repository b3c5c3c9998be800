package scheduler

import (
	"fmt"
	"time"
)

// Schedule вычисляет момент следующего запуска
type Schedule interface {
	Next(now time.Time) time.Time
	String() string
}

type every struct {
	interval time.Duration
}

// Every запуск через равные интервалы
func Every(interval time.Duration) Schedule {
	return every{interval: interval}
}

func (e every) Next(now time.Time) time.Time {
	return now.Add(e.interval)
}

func (e every) String() string {
	return "every " + e.interval.String()
}

type dailyAt struct {
	hour, minute int
	location     *time.Location
}

// DailyAt ежедневный запуск в заданное местное время
func DailyAt(hour, minute int, location *time.Location) Schedule {
	if location == nil {
		location = time.UTC
	}
	return dailyAt{hour: hour, minute: minute, location: location}
}

func (d dailyAt) Next(now time.Time) time.Time {
	local := now.In(d.location)
	next := time.Date(local.Year(), local.Month(), local.Day(), d.hour, d.minute, 0, 0, d.location)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, d.hour, d.minute, 0, 0, d.location)
	}
	return next
}

func (d dailyAt) String() string {
	return fmt.Sprintf("daily at %02d:%02d %s", d.hour, d.minute, d.location)
}

// ParseClock разбирает время вида "09:00"
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
