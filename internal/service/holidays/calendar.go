// Package holidays определяет, считается ли дата праздником для ценообразования.
//
// Порядок проверки: ручная пометка, фиксированные государственные праздники,
// коммерческие праздники (не выходные, но с праздничным тарифом),
// плавающие праздники, лунные праздники по таблице.
//
// Лунные праздники известны только для годов из таблицы lunarTable
// (LunarFirstYear..LunarLastYear). Для остальных годов лунные даты никогда не
// совпадают; таблицу нужно дополнять, а не вычислять приблизительно.
package holidays

import (
	"time"

	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// Kind источник совпадения
type Kind string

const (
	KindOverride Kind = "override"
	KindFixed    Kind = "fixed"
	KindFestival Kind = "festival"
	KindFloating Kind = "floating"
	KindLunar    Kind = "lunar"
)

// Holiday найденный праздник
type Holiday struct {
	Name string
	Kind Kind
}

type monthDay struct {
	month time.Month
	day   int
}

var fixedHolidays = map[monthDay]string{
	{time.January, 1}:   "New Year's Day",
	{time.February, 28}: "Peace Memorial Day",
	{time.April, 4}:     "Children's Day",
	{time.April, 5}:     "Tomb Sweeping Day",
	{time.May, 1}:       "Labour Day",
	{time.October, 10}:  "National Day",
}

var festivalDates = map[monthDay]string{
	{time.February, 14}: "Valentine's Day",
	{time.August, 8}:    "Father's Day",
	{time.December, 24}: "Christmas Eve",
	{time.December, 25}: "Christmas Day",
	{time.December, 31}: "New Year's Eve",
}

// Calendar праздничный календарь без состояния
type Calendar struct{}

// NewCalendar создает календарь
func NewCalendar() *Calendar {
	return &Calendar{}
}

// Lookup возвращает праздник для даты
// override != nil имеет приоритет над вычисленным статусом:
// true - праздник, false - не праздник
func (c *Calendar) Lookup(date types.Date, override *bool) (Holiday, bool) {
	if override != nil {
		if *override {
			return Holiday{Name: "Manual holiday", Kind: KindOverride}, true
		}
		return Holiday{}, false
	}

	key := monthDay{date.Month, date.Day}

	if name, ok := fixedHolidays[key]; ok {
		return Holiday{Name: name, Kind: KindFixed}, true
	}

	if name, ok := festivalDates[key]; ok {
		return Holiday{Name: name, Kind: KindFestival}, true
	}

	if name, ok := floatingHoliday(date); ok {
		return Holiday{Name: name, Kind: KindFloating}, true
	}

	if name, ok := lunarHoliday(date); ok {
		return Holiday{Name: name, Kind: KindLunar}, true
	}

	return Holiday{}, false
}

// IsHoliday упрощенная форма Lookup
func (c *Calendar) IsHoliday(date types.Date, override *bool) bool {
	_, ok := c.Lookup(date, override)
	return ok
}

// floatingHoliday праздники, вычисляемые по дню недели
func floatingHoliday(date types.Date) (string, bool) {
	// Mother's Day: второе воскресенье мая
	if date.Month == time.May && date.Weekday() == time.Sunday && date.Day > 7 && date.Day <= 14 {
		return "Mother's Day", true
	}
	return "", false
}

// NthWeekday n-й день недели wd в месяце (n начинается с 1)
func NthWeekday(year int, month time.Month, wd time.Weekday, n int) types.Date {
	first := types.NewDate(year, month, 1)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDays(offset + (n-1)*7)
}
