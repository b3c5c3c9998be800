package availability

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// GetPriceForDate цена ночи для типа номера
func (s *Service) GetPriceForDate(ctx context.Context, roomTypeID int64, date types.Date) (*domain.NightlyRate, error) {
	quote, err := s.QuoteStay(ctx, roomTypeID, domain.DateRange{Start: date, End: date.AddDays(1)})
	if err != nil {
		return nil, err
	}
	rate := quote.Nights[0]
	return &rate, nil
}

// QuoteStay рассчитывает стоимость каждой ночи и итог
// Выходной или праздник - тариф WeekendRate, иначе WeekdayRate.
// Ручная пометка меняет только праздничный статус: суббота остается выходным
func (s *Service) QuoteStay(ctx context.Context, roomTypeID int64, stay domain.DateRange) (*domain.StayQuote, error) {
	if stay.Nights() <= 0 {
		return nil, fmt.Errorf("%w: empty stay %s", ErrInvalidInput, stay)
	}

	roomType, err := s.getRoomType(ctx, "QuoteStay", roomTypeID)
	if err != nil {
		return nil, err
	}

	overrides, err := s.overrides.ListRange(ctx, stay.Start, stay.End)
	if err != nil {
		s.logger.Error("QuoteStay: failed to load holiday overrides: %v", err)
		return nil, fmt.Errorf("%w: QuoteStay - repository error: %w", ErrInternal, err)
	}
	byDate := make(map[types.Date]bool, len(overrides))
	for _, o := range overrides {
		byDate[o.Date] = o.IsHoliday
	}

	quote := &domain.StayQuote{
		RoomTypeID: roomTypeID,
		Stay:       stay,
		Total:      decimal.Zero,
	}

	for _, date := range stay.Dates() {
		var override *bool
		if v, ok := byDate[date]; ok {
			override = &v
		}

		rate := s.nightlyRate(roomType, date, override)
		quote.Nights = append(quote.Nights, rate)
		quote.Total = quote.Total.Add(rate.Price)
	}

	return quote, nil
}

func (s *Service) nightlyRate(roomType *domain.RoomType, date types.Date, override *bool) domain.NightlyRate {
	rate := domain.NightlyRate{
		Date:  date,
		Price: roomType.WeekdayRate,
		Kind:  domain.RateWeekday,
	}

	if date.IsWeekend() {
		rate.Price = roomType.WeekendRate
		rate.Kind = domain.RateWeekend
	}

	if holiday, ok := s.calendar.Lookup(date, override); ok {
		rate.Price = roomType.WeekendRate
		rate.Kind = domain.RateHoliday
		rate.HolidayName = holiday.Name
	}

	return rate
}

// SetHolidayOverride сохраняет ручную пометку даты
func (s *Service) SetHolidayOverride(ctx context.Context, override domain.HolidayOverride) error {
	if override.Date.IsZero() {
		return fmt.Errorf("%w: empty override date", ErrInvalidInput)
	}
	if len(override.Note) > domain.MaxHoldNoteLength {
		return fmt.Errorf("%w: note too long", ErrInvalidInput)
	}

	if err := s.overrides.Upsert(ctx, override); err != nil {
		s.logger.Error("SetHolidayOverride: repository error for date=%s: %v", override.Date, err)
		return fmt.Errorf("%w: SetHolidayOverride - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("SetHolidayOverride: date=%s is_holiday=%t", override.Date, override.IsHoliday)
	return nil
}

// RemoveHolidayOverride удаляет ручную пометку, дата снова вычисляется календарем
func (s *Service) RemoveHolidayOverride(ctx context.Context, date types.Date) error {
	if err := s.overrides.Delete(ctx, date); err != nil {
		s.logger.Error("RemoveHolidayOverride: repository error for date=%s: %v", date, err)
		return fmt.Errorf("%w: RemoveHolidayOverride - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("RemoveHolidayOverride: date=%s", date)
	return nil
}
