package set_holiday_override

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

type HolidayService interface {
	SetHolidayOverride(ctx context.Context, override domain.HolidayOverride) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
