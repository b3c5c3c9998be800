package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
)

// Service конечный автомат бронирования и побочные эффекты переходов
type Service struct {
	bookingRepo  BookingRepository
	ledger       Ledger
	payments     PaymentService
	notifier     Notifier
	txManager    TransactionManager
	settings     domain.HotelSettings
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	ledger Ledger,
	payments PaymentService,
	notifier Notifier,
	txManager TransactionManager,
	settings domain.HotelSettings,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		payments:     payments,
		notifier:     notifier,
		txManager:    txManager,
		settings:     settings,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// applyFn побочные эффекты перехода, выполняются в той же транзакции
// Отвечает за сохранение нового статуса
type applyFn func(ctx context.Context, booking *domain.Booking, next domain.BookingStatus) error

// GetByID получает бронирование по ID вместе с платежными данными
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainBooking(booking)

	payment, err := s.payments.GetByBookingID(ctx, id)
	switch {
	case err == nil:
		resp.Payment = models.FromDomainPayment(payment)
	case errors.Is(err, domain.ErrPaymentNotFound):
	default:
		return nil, fmt.Errorf("%w: GetByID - payment lookup: %w", ErrInternal, err)
	}

	return resp, nil
}

// GetStatus возвращает текущий статус бронирования
func (s *Service) GetStatus(ctx context.Context, id int64) (*models.StatusResponse, error) {
	booking, err := s.getBooking(ctx, "GetStatus", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainStatus(booking), nil
}

// Confirm pending -> confirmed, отправляет инструкции по оплате
func (s *Service) Confirm(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.transition(ctx, "Confirm", id, domain.ActionConfirm, nil)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, booking, domain.NotificationBookingConfirmed, map[string]string{
		"amount":          booking.TotalPrice.StringFixed(2),
		"currency":        s.settings.Currency,
		"bank_name":       s.settings.BankName,
		"bank_account":    s.settings.BankAccount,
		"payment_methods": strings.Join([]string{string(domain.PaymentMethodBankTransfer), string(domain.PaymentMethodCashOnSite)}, ","),
	})

	return models.FromDomainBooking(booking), nil
}

// SelectPaymentMethod confirmed -> payment_pending (перевод) или cash_on_site (оплата на месте)
// Создает платежные данные в той же транзакции
func (s *Service) SelectPaymentMethod(ctx context.Context, id int64, req *models.SelectPaymentMethodRequest) (*models.BookingResponse, error) {
	method := domain.PaymentMethod(req.Method)
	action, err := domain.ActionForPaymentMethod(method)
	if err != nil {
		s.logger.Warn("SelectPaymentMethod: invalid method=%s for booking id=%d", req.Method, id)
		return nil, err
	}

	var detail *domain.PaymentDetail
	booking, err := s.transition(ctx, "SelectPaymentMethod", id, action,
		func(txCtx context.Context, b *domain.Booking, next domain.BookingStatus) error {
			created, err := s.payments.Open(txCtx, b, method)
			if err != nil {
				return err
			}
			detail = created
			return s.updateStatus(txCtx, b, next)
		})
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainBooking(booking)
	resp.Payment = models.FromDomainPayment(detail)
	return resp, nil
}

// SubmitTransferFragment сохраняет последние пять цифр перевода, статус не меняется
func (s *Service) SubmitTransferFragment(ctx context.Context, id int64, req *models.SubmitFragmentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("SubmitTransferFragment: booking id=%d", id)

	detail, err := s.payments.SubmitFragment(ctx, id, req.LastFive)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPayment(detail), nil
}

// ConfirmPayment payment_pending -> paid, требует присланного фрагмента
func (s *Service) ConfirmPayment(ctx context.Context, id int64) (*models.BookingResponse, error) {
	var detail *domain.PaymentDetail
	booking, err := s.transition(ctx, "ConfirmPayment", id, domain.ActionConfirmPayment,
		func(txCtx context.Context, b *domain.Booking, next domain.BookingStatus) error {
			received, err := s.payments.ConfirmReceipt(txCtx, b.ID)
			if err != nil {
				return err
			}
			detail = received
			return s.updateStatus(txCtx, b, next)
		})
	if err != nil {
		return nil, err
	}

	payload := map[string]string{
		"amount":   detail.Amount.StringFixed(2),
		"currency": s.settings.Currency,
		"method":   string(detail.Method),
	}
	if detail.LastFive != nil {
		payload["last_five"] = *detail.LastFive
	}
	s.notify(ctx, booking, domain.NotificationPaymentReceived, payload)

	resp := models.FromDomainBooking(booking)
	resp.Payment = models.FromDomainPayment(detail)
	return resp, nil
}

// MarkCheckedIn paid | cash_on_site -> completed
// Для оплаты на месте платеж отмечается полученным при заезде
func (s *Service) MarkCheckedIn(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.transition(ctx, "MarkCheckedIn", id, domain.ActionCheckIn,
		func(txCtx context.Context, b *domain.Booking, next domain.BookingStatus) error {
			if b.Status == domain.StatusCashOnSite {
				if _, err := s.payments.MarkReceivedOnSite(txCtx, b.ID); err != nil {
					return err
				}
			}
			return s.updateStatus(txCtx, b, next)
		})
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel любой нетерминальный статус -> cancelled
// Освобождает весь диапазон дат в той же транзакции
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", id)
		return nil, fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	var reason *string
	if r := strings.TrimSpace(req.CancellationReason); r != "" {
		reason = &r
	}

	booking, err := s.transition(ctx, "Cancel", id, domain.ActionCancel,
		func(txCtx context.Context, b *domain.Booking, next domain.BookingStatus) error {
			if err := s.ledger.Release(txCtx, b.RoomTypeID, b.Stay()); err != nil {
				return err
			}

			now := s.timeProvider.Now()
			if err := s.bookingRepo.Cancel(txCtx, b.ID, b.Status, reason, now); err != nil {
				return s.repositoryError("Cancel", b.ID, err)
			}
			b.CancellationReason = reason
			b.CancelledAt = &now
			return nil
		})
	if err != nil {
		return nil, err
	}

	payload := map[string]string{}
	if reason != nil {
		payload["reason"] = *reason
	}
	s.notify(ctx, booking, domain.NotificationBookingCancelled, payload)

	return models.FromDomainBooking(booking), nil
}

// ListBookings возвращает бронирования по фильтру
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListBookings: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// transition применяет действие к бронированию в сериализуемой транзакции
// Строка бронирования блокируется, из неверного статуса возвращается ErrInvalidTransition без побочных эффектов
func (s *Service) transition(ctx context.Context, op string, id int64, action domain.Action, apply applyFn) (*domain.Booking, error) {
	s.logger.Info("%s: booking id=%d action=%s", op, id, action)

	var result *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, op, id)
		if err != nil {
			return err
		}

		next, err := domain.NextStatus(booking.Status, action)
		if err != nil {
			s.logger.Warn("%s: booking id=%d rejected: %v", op, id, err)
			return err
		}

		if apply == nil {
			apply = s.updateStatus
		}
		if err := apply(txCtx, booking, next); err != nil {
			return err
		}

		booking.Status = next
		booking.UpdatedAt = s.timeProvider.Now()
		result = booking
		return nil
	})
	if err != nil {
		s.metrics.IncBookingTransition(string(action), transitionResult(err))
		return nil, err
	}

	s.metrics.IncBookingTransition(string(action), "ok")
	s.logger.Info("%s: booking id=%d is now %s", op, id, result.Status)
	return result, nil
}

func (s *Service) updateStatus(ctx context.Context, b *domain.Booking, next domain.BookingStatus) error {
	if err := s.bookingRepo.UpdateStatus(ctx, b.ID, b.Status, next); err != nil {
		return s.repositoryError("UpdateStatus", b.ID, err)
	}
	return nil
}

// notify отправляет уведомление после фиксации перехода
// Ошибка доставки не откатывает переход
func (s *Service) notify(ctx context.Context, b *domain.Booking, category domain.NotificationCategory, payload map[string]string) {
	n := domain.NewNotification(b, category, payload, s.timeProvider.Now())
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("notify: %s for booking id=%d not delivered, status change kept: %v", category, b.ID, err)
	}
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, domain.ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) repositoryError(op string, id int64, err error) error {
	if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrBookingNotFound) {
		return err
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}

func transitionResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrBookingNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrMissingFragment):
		return "missing_fragment"
	default:
		return "error"
	}
}
