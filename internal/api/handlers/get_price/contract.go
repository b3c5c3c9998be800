package get_price

import (
	"context"

	getAvailability "github.com/m04kA/SMC-HotelService/internal/usecase/get_availability"
)

type GetPriceUseCase interface {
	GetPrice(ctx context.Context, req *getAvailability.PriceRequest) (*getAvailability.PriceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
