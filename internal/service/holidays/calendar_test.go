package holidays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-HotelService/pkg/ptr"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

func TestCalendar_Lookup(t *testing.T) {
	c := NewCalendar()

	tests := []struct {
		name     string
		date     string
		override *bool
		want     bool
		kind     Kind
	}{
		{name: "new year is fixed holiday", date: "2026-01-01", want: true, kind: KindFixed},
		{name: "override false wins over fixed", date: "2026-01-01", override: ptr.Ptr(false), want: false},
		{name: "override true on ordinary day", date: "2026-03-11", override: ptr.Ptr(true), want: true, kind: KindOverride},
		{name: "national day", date: "2030-10-10", want: true, kind: KindFixed},
		{name: "christmas is festival", date: "2026-12-25", want: true, kind: KindFestival},
		{name: "valentine is festival", date: "2026-02-14", want: true, kind: KindFestival},
		{name: "mother's day 2026", date: "2026-05-10", want: true, kind: KindFloating},
		{name: "first sunday of may is not mother's day", date: "2026-05-03", want: false},
		{name: "third sunday of may is not mother's day", date: "2026-05-17", want: false},
		{name: "lunar new year 2026", date: "2026-02-17", want: true, kind: KindLunar},
		{name: "mid-autumn 2025", date: "2025-10-06", want: true, kind: KindLunar},
		{name: "dragon boat 2027", date: "2027-06-09", want: true, kind: KindLunar},
		{name: "ordinary saturday is not a holiday", date: "2026-01-17", want: false},
		{name: "ordinary weekday", date: "2026-01-15", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := c.Lookup(types.MustParseDate(tt.date), tt.override)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.kind, h.Kind)
				assert.NotEmpty(t, h.Name)
			}
		})
	}
}

// Лунные даты вне таблицы не совпадают и не приводят к ошибке
func TestCalendar_LunarOutsideTableNeverMatches(t *testing.T) {
	c := NewCalendar()

	// Лунный Новый год 2028 приходится на 26 января, но таблица заканчивается 2027 годом
	assert.False(t, HasLunarTable(2028))
	assert.False(t, c.IsHoliday(types.MustParseDate("2028-01-26"), nil))

	// 2023: Новый год 22 января, таблица начинается с 2024
	assert.False(t, HasLunarTable(LunarFirstYear-1))
	assert.False(t, c.IsHoliday(types.MustParseDate("2023-01-22"), nil))

	// Фиксированные праздники не зависят от таблицы
	assert.True(t, c.IsHoliday(types.MustParseDate("2028-01-01"), nil))
}

func TestLunarTable_CoversEveryYearInRange(t *testing.T) {
	for year := LunarFirstYear; year <= LunarLastYear; year++ {
		assert.True(t, HasLunarTable(year), "year %d", year)
		assert.Len(t, lunarTable[year], 8, "year %d", year)
	}
}

func TestNthWeekday(t *testing.T) {
	assert.Equal(t, types.MustParseDate("2026-05-10"), NthWeekday(2026, time.May, time.Sunday, 2))
	assert.Equal(t, types.MustParseDate("2027-05-09"), NthWeekday(2027, time.May, time.Sunday, 2))
	assert.Equal(t, types.MustParseDate("2026-05-01"), NthWeekday(2026, time.May, time.Friday, 1))
}
