package domain

import "github.com/m04kA/SMC-HotelService/pkg/types"

// HolidayOverride ручная пометка даты праздником или рабочим днем
type HolidayOverride struct {
	Date      types.Date
	IsHoliday bool
	Note      string
}
