package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Service сверка банковских переводов по последним пяти цифрам
// Сверка справочная: сервис меняет только статус записи и никогда не проводит платежи
type Service struct {
	paymentRepo  PaymentRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	settings     domain.HotelSettings
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	settings domain.HotelSettings,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Open создает платежные данные при выборе способа оплаты
// Вызывается внутри транзакции перехода статуса
func (s *Service) Open(ctx context.Context, booking *domain.Booking, method domain.PaymentMethod) (*domain.PaymentDetail, error) {
	if !method.IsValid() {
		return nil, domain.ErrInvalidPaymentMethod
	}

	detail := &domain.PaymentDetail{
		BookingID: booking.ID,
		Method:    method,
		Amount:    booking.TotalPrice,
		Status:    domain.PaymentStatusPending,
	}
	if method == domain.PaymentMethodBankTransfer {
		detail.BankName = s.settings.BankName
		detail.BankAccount = s.settings.BankAccount
	}

	created, err := s.paymentRepo.Create(ctx, detail)
	if err != nil {
		s.logger.Error("Open: failed to create payment detail for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Open - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Open: payment detail id=%d created for booking id=%d, method=%s, amount=%s",
		created.ID, booking.ID, method, created.Amount.StringFixed(2))
	return created, nil
}

// SubmitFragment сохраняет последние пять цифр перевода
// Повторная отправка до подтверждения перезаписывает предыдущую. Статус бронирования не меняется
func (s *Service) SubmitFragment(ctx context.Context, bookingID int64, fragment string) (*domain.PaymentDetail, error) {
	if err := domain.ValidateFragment(fragment); err != nil {
		s.logger.Warn("SubmitFragment: invalid fragment for booking id=%d: %v", bookingID, err)
		return nil, err
	}

	var result *domain.PaymentDetail
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "SubmitFragment", bookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.StatusPaymentPending {
			s.logger.Warn("SubmitFragment: booking id=%d is not awaiting transfer, status=%s", bookingID, booking.Status)
			return fmt.Errorf("%w: fragment can only be submitted while awaiting bank transfer, status is %s",
				domain.ErrInvalidTransition, booking.Status)
		}

		detail, err := s.getDetail(txCtx, "SubmitFragment", bookingID)
		if err != nil {
			return err
		}
		if detail.Method != domain.PaymentMethodBankTransfer || detail.IsReceived() {
			return fmt.Errorf("%w: payment detail does not accept fragments", domain.ErrInvalidTransition)
		}

		now := s.timeProvider.Now()
		detail.LastFive = &fragment
		detail.SubmittedAt = &now

		if err := s.paymentRepo.Update(txCtx, detail); err != nil {
			s.logger.Error("SubmitFragment: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: SubmitFragment - repository error: %w", ErrInternal, err)
		}

		result = detail
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("SubmitFragment: fragment recorded for booking id=%d", bookingID)
	return result, nil
}

// ConfirmReceipt отмечает перевод полученным
// Без присланного фрагмента возвращает ErrMissingFragment
func (s *Service) ConfirmReceipt(ctx context.Context, bookingID int64) (*domain.PaymentDetail, error) {
	var result *domain.PaymentDetail
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "ConfirmReceipt", bookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.StatusPaymentPending {
			return fmt.Errorf("%w: payment can only be confirmed while awaiting bank transfer, status is %s",
				domain.ErrInvalidTransition, booking.Status)
		}

		detail, err := s.getDetail(txCtx, "ConfirmReceipt", bookingID)
		if err != nil {
			return err
		}
		if detail.IsReceived() {
			return fmt.Errorf("%w: payment already received", domain.ErrInvalidTransition)
		}
		if !detail.HasFragment() {
			s.logger.Warn("ConfirmReceipt: booking id=%d has no submitted fragment", bookingID)
			return domain.ErrMissingFragment
		}

		s.markReceived(detail)
		if err := s.paymentRepo.Update(txCtx, detail); err != nil {
			s.logger.Error("ConfirmReceipt: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: ConfirmReceipt - repository error: %w", ErrInternal, err)
		}

		result = detail
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ConfirmReceipt: transfer received for booking id=%d, fragment=%s", bookingID, *result.LastFive)
	return result, nil
}

// MarkReceivedOnSite отмечает оплату наличными при заезде
func (s *Service) MarkReceivedOnSite(ctx context.Context, bookingID int64) (*domain.PaymentDetail, error) {
	var result *domain.PaymentDetail
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		detail, err := s.getDetail(txCtx, "MarkReceivedOnSite", bookingID)
		if err != nil {
			return err
		}
		if detail.Method != domain.PaymentMethodCashOnSite {
			return fmt.Errorf("%w: payment method is %s", domain.ErrInvalidTransition, detail.Method)
		}
		if detail.IsReceived() {
			result = detail
			return nil
		}

		s.markReceived(detail)
		if err := s.paymentRepo.Update(txCtx, detail); err != nil {
			s.logger.Error("MarkReceivedOnSite: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: MarkReceivedOnSite - repository error: %w", ErrInternal, err)
		}

		result = detail
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("MarkReceivedOnSite: cash received for booking id=%d", bookingID)
	return result, nil
}

// GetByBookingID возвращает платежные данные бронирования
func (s *Service) GetByBookingID(ctx context.Context, bookingID int64) (*domain.PaymentDetail, error) {
	return s.getDetail(ctx, "GetByBookingID", bookingID)
}

func (s *Service) markReceived(detail *domain.PaymentDetail) {
	now := s.timeProvider.Now()
	detail.Status = domain.PaymentStatusReceived
	detail.ConfirmedAt = &now
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

func (s *Service) getDetail(ctx context.Context, op string, bookingID int64) (*domain.PaymentDetail, error) {
	detail, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			s.logger.Warn("%s: no payment detail for booking id=%d", op, bookingID)
			return nil, domain.ErrPaymentNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return detail, nil
}
