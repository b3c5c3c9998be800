package import_holds

import (
	"context"

	importHolds "github.com/m04kA/SMC-HotelService/internal/usecase/import_holds"
)

type ImportHoldsUseCase interface {
	Execute(ctx context.Context, req *importHolds.Request) (*importHolds.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
