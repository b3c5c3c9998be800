package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	roomTypeRepo RoomTypeRepository
	ledger       Ledger
	notifier     Notifier
	txManager    TransactionManager
	settings     domain.HotelSettings
	metrics      Metrics
	validate     *validator.Validate
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomTypeRepo RoomTypeRepository,
	ledger Ledger,
	notifier Notifier,
	txManager TransactionManager,
	settings domain.HotelSettings,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomTypeRepo: roomTypeRepo,
		ledger:       ledger,
		notifier:     notifier,
		txManager:    txManager,
		settings:     settings,
		metrics:      metrics,
		validate:     validator.New(),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Резервирование ночей и вставка бронирования выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: room_type=%d, check_in=%s, check_out=%s, guests=%d",
		req.RoomTypeID, req.CheckIn, req.CheckOut, req.GuestCount)

	// 1. Валидация входных данных
	stay, err := uc.validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBookingTransition("create", "invalid")
		return nil, err
	}

	var (
		result *domain.Booking
		quote  *domain.StayQuote
	)

	// 2. Проверка категории, расчет цены, резервирование и сохранение
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		roomType, err := uc.roomTypeRepo.GetByID(txCtx, req.RoomTypeID)
		if err != nil {
			if errors.Is(err, domain.ErrRoomTypeNotFound) {
				uc.logger.Warn("CreateBooking: room type id=%d not found", req.RoomTypeID)
				return domain.ErrRoomTypeNotFound
			}
			uc.logger.Error("CreateBooking: failed to get room type id=%d: %v", req.RoomTypeID, err)
			return fmt.Errorf("%w: failed to get room type: %w", ErrInternal, err)
		}
		if !roomType.Active {
			uc.logger.Warn("CreateBooking: room type id=%d is inactive", req.RoomTypeID)
			return ErrRoomTypeInactive
		}
		if !roomType.CanHost(req.GuestCount) {
			uc.logger.Warn("CreateBooking: %d guests exceed max %d for room type id=%d",
				req.GuestCount, roomType.MaxGuests, req.RoomTypeID)
			return fmt.Errorf("%w: max %d guests", ErrTooManyGuests, roomType.MaxGuests)
		}

		q, err := uc.ledger.QuoteStay(txCtx, req.RoomTypeID, stay)
		if err != nil {
			return err
		}

		if err := uc.ledger.Reserve(txCtx, req.RoomTypeID, stay); err != nil {
			return err
		}

		booking := &domain.Booking{
			RoomTypeID: req.RoomTypeID,
			Guest: domain.GuestInfo{
				Name:  strings.TrimSpace(req.GuestName),
				Email: strings.TrimSpace(req.GuestEmail),
				Phone: strings.TrimSpace(req.GuestPhone),
			},
			CheckIn:         stay.Start,
			CheckOut:        stay.End,
			GuestCount:      req.GuestCount,
			TotalPrice:      q.Total,
			Status:          domain.StatusPending,
			SpecialRequests: req.SpecialRequests,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		quote = q
		return nil
	})
	if err != nil {
		uc.metrics.IncBookingTransition("create", createResult(err))
		return nil, err
	}

	uc.metrics.IncBookingTransition("create", "ok")
	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%s %s",
		result.ID, result.TotalPrice.StringFixed(2), uc.settings.Currency)

	// 3. Уведомление после фиксации, ошибка доставки не отменяет бронирование
	n := domain.NewNotification(result, domain.NotificationBookingCreated, map[string]string{
		"amount":   result.TotalPrice.StringFixed(2),
		"currency": uc.settings.Currency,
		"nights":   fmt.Sprintf("%d", stay.Nights()),
	}, uc.timeProvider.Now())
	if err := uc.notifier.Notify(ctx, n); err != nil {
		uc.logger.Warn("CreateBooking: booking_created for booking id=%d not delivered: %v", result.ID, err)
	}

	return toResponse(result, quote, uc.settings.Currency), nil
}

// validateRequest проверяет запрос и возвращает диапазон ночей
func (uc *UseCase) validateRequest(req *Request) (domain.DateRange, error) {
	if err := uc.validate.Struct(req); err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	checkIn, err := types.ParseDate(req.CheckIn)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: checkIn: %w", ErrInvalidInput, err)
	}
	checkOut, err := types.ParseDate(req.CheckOut)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: checkOut: %w", ErrInvalidInput, err)
	}

	stay, err := domain.NewDateRange(checkIn, checkOut)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if stay.Nights() > domain.MaxStayNights {
		return domain.DateRange{}, fmt.Errorf("%w: %d nights, max %d", ErrStayTooLong, stay.Nights(), domain.MaxStayNights)
	}

	today := uc.settings.Today(uc.timeProvider.Now())
	if checkIn.Before(today) {
		return domain.DateRange{}, fmt.Errorf("%w: %s is before %s", ErrCheckInInPast, checkIn, today)
	}

	return stay, nil
}

func toResponse(b *domain.Booking, quote *domain.StayQuote, currency string) *Response {
	resp := &Response{
		ID:              b.ID,
		RoomTypeID:      b.RoomTypeID,
		GuestName:       b.Guest.Name,
		GuestEmail:      b.Guest.Email,
		GuestPhone:      b.Guest.Phone,
		CheckIn:         b.CheckIn.String(),
		CheckOut:        b.CheckOut.String(),
		GuestCount:      b.GuestCount,
		TotalPrice:      b.TotalPrice,
		Currency:        currency,
		Status:          string(b.Status),
		SpecialRequests: b.SpecialRequests,
		Nights:          make([]Night, 0, len(quote.Nights)),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	for _, n := range quote.Nights {
		resp.Nights = append(resp.Nights, Night{
			Date:        n.Date.String(),
			Price:       n.Price,
			Kind:        string(n.Kind),
			HolidayName: n.HolidayName,
		})
	}

	return resp
}

func createResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrRoomTypeNotFound):
		return "not_found"
	case errors.Is(err, ErrRoomTypeInactive), errors.Is(err, ErrTooManyGuests):
		return "invalid"
	default:
		return "error"
	}
}
