package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

const defaultRangeDays = 30

// UseCase use case для получения календаря доступности и цен
type UseCase struct {
	ledger       Ledger
	settings     domain.HotelSettings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ledger Ledger, settings domain.HotelSettings, logger Logger) *UseCase {
	return &UseCase{
		ledger:       ledger,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает по каждой ночи периода счетчики и цену
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: room_type=%d, from=%s", req.RoomTypeID, req.From)

	// 1. Валидация входных данных
	r, err := uc.parseRange(req)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Счетчики по датам
	days, err := uc.ledger.GetAvailability(ctx, req.RoomTypeID, r)
	if err != nil {
		return nil, err
	}

	// 3. Цены по датам
	quote, err := uc.ledger.QuoteStay(ctx, req.RoomTypeID, r)
	if err != nil {
		return nil, err
	}

	resp, err := buildCalendar(req.RoomTypeID, r, days, quote)
	if err != nil {
		uc.logger.Error("GetAvailability: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailability: built %d days for room_type=%d", len(resp.Days), req.RoomTypeID)
	return resp, nil
}

// GetPrice возвращает цену ночи на дату
func (uc *UseCase) GetPrice(ctx context.Context, req *PriceRequest) (*PriceResponse, error) {
	if req.RoomTypeID <= 0 {
		return nil, fmt.Errorf("%w: roomTypeID must be positive", ErrInvalidInput)
	}
	date, err := types.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %w", ErrInvalidInput, err)
	}

	rate, err := uc.ledger.GetPriceForDate(ctx, req.RoomTypeID, date)
	if err != nil {
		return nil, err
	}

	return &PriceResponse{
		RoomTypeID:  req.RoomTypeID,
		Date:        rate.Date.String(),
		Price:       rate.Price,
		Kind:        string(rate.Kind),
		HolidayName: rate.HolidayName,
	}, nil
}

func (uc *UseCase) parseRange(req *Request) (domain.DateRange, error) {
	if req.RoomTypeID <= 0 {
		return domain.DateRange{}, fmt.Errorf("%w: roomTypeID must be positive", ErrInvalidInput)
	}

	var from types.Date
	if req.From == "" {
		from = uc.settings.Today(uc.timeProvider.Now())
	} else {
		parsed, err := types.ParseDate(req.From)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: from: %w", ErrInvalidInput, err)
		}
		from = parsed
	}

	to := from.AddDays(defaultRangeDays)
	if req.To != nil {
		parsed, err := types.ParseDate(*req.To)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: to: %w", ErrInvalidInput, err)
		}
		to = parsed
	}

	r, err := domain.NewDateRange(from, to)
	if err != nil {
		return domain.DateRange{}, err
	}
	if r.Nights() > MaxRangeDays {
		return domain.DateRange{}, fmt.Errorf("%w: %d days, max %d", ErrRangeTooLong, r.Nights(), MaxRangeDays)
	}
	return r, nil
}
