package remove_holiday_override

import (
	"context"

	"github.com/m04kA/SMC-HotelService/pkg/types"
)

type HolidayService interface {
	RemoveHolidayOverride(ctx context.Context, date types.Date) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
