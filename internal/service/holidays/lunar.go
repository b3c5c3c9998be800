package holidays

import (
	"time"

	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// Границы таблицы лунных праздников
const (
	LunarFirstYear = 2024
	LunarLastYear  = 2027
)

type lunarEntry struct {
	month time.Month
	day   int
	name  string
}

// lunarTable лунные праздники в григорианских датах
// Канун Нового года и первые три дня, Праздник фонарей, Праздник драконьих лодок,
// Цисицзе, Праздник середины осени
var lunarTable = map[int][]lunarEntry{
	2024: {
		{time.February, 9, "Lunar New Year's Eve"},
		{time.February, 10, "Lunar New Year"},
		{time.February, 11, "Lunar New Year"},
		{time.February, 12, "Lunar New Year"},
		{time.February, 24, "Lantern Festival"},
		{time.June, 10, "Dragon Boat Festival"},
		{time.August, 10, "Qixi Festival"},
		{time.September, 17, "Mid-Autumn Festival"},
	},
	2025: {
		{time.January, 28, "Lunar New Year's Eve"},
		{time.January, 29, "Lunar New Year"},
		{time.January, 30, "Lunar New Year"},
		{time.January, 31, "Lunar New Year"},
		{time.February, 12, "Lantern Festival"},
		{time.May, 31, "Dragon Boat Festival"},
		{time.August, 29, "Qixi Festival"},
		{time.October, 6, "Mid-Autumn Festival"},
	},
	2026: {
		{time.February, 16, "Lunar New Year's Eve"},
		{time.February, 17, "Lunar New Year"},
		{time.February, 18, "Lunar New Year"},
		{time.February, 19, "Lunar New Year"},
		{time.March, 3, "Lantern Festival"},
		{time.June, 19, "Dragon Boat Festival"},
		{time.August, 19, "Qixi Festival"},
		{time.September, 25, "Mid-Autumn Festival"},
	},
	2027: {
		{time.February, 5, "Lunar New Year's Eve"},
		{time.February, 6, "Lunar New Year"},
		{time.February, 7, "Lunar New Year"},
		{time.February, 8, "Lunar New Year"},
		{time.February, 20, "Lantern Festival"},
		{time.June, 9, "Dragon Boat Festival"},
		{time.August, 8, "Qixi Festival"},
		{time.September, 15, "Mid-Autumn Festival"},
	},
}

func lunarHoliday(date types.Date) (string, bool) {
	for _, e := range lunarTable[date.Year] {
		if e.month == date.Month && e.day == date.Day {
			return e.name, true
		}
	}
	return "", false
}

// HasLunarTable true, если для года известны лунные праздники
func HasLunarTable(year int) bool {
	_, ok := lunarTable[year]
	return ok
}
