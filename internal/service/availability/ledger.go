package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// Service реестр доступности номеров и расчет цен
// Единственный источник правды о том, сколько номеров можно продать на дату
type Service struct {
	roomTypes RoomTypeRepository
	days      DayRepository
	holds     HoldRepository
	overrides HolidayOverrideRepository
	calendar  HolidayCalendar
	txManager TransactionManager
	metrics   Metrics
	logger    Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	roomTypes RoomTypeRepository,
	days DayRepository,
	holds HoldRepository,
	overrides HolidayOverrideRepository,
	calendar HolidayCalendar,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		roomTypes: roomTypes,
		days:      days,
		holds:     holds,
		overrides: overrides,
		calendar:  calendar,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
	}
}

// CheckCapacity проверяет, что на каждую дату диапазона помещается еще один номер
// Только чтение, без блокировок: результат может устареть к моменту Reserve
func (s *Service) CheckCapacity(ctx context.Context, roomTypeID int64, stay domain.DateRange) (*domain.CapacityCheck, error) {
	days, err := s.GetAvailability(ctx, roomTypeID, stay)
	if err != nil {
		return nil, err
	}

	for _, day := range days {
		if !day.CanAccept(1) {
			date := day.Date
			return &domain.CapacityCheck{Available: false, FirstConflict: &date}, nil
		}
	}

	return &domain.CapacityCheck{Available: true}, nil
}

// Reserve атомарно проверяет вместимость и увеличивает committed на каждую дату
// Возвращает *domain.CapacityError с первой конфликтной датой
func (s *Service) Reserve(ctx context.Context, roomTypeID int64, stay domain.DateRange) error {
	if stay.Nights() <= 0 {
		return fmt.Errorf("%w: empty stay %s", ErrInvalidInput, stay)
	}

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		roomType, err := s.getRoomType(txCtx, "Reserve", roomTypeID)
		if err != nil {
			return err
		}

		dates := stay.Dates()
		if err := s.lockAndCheck(txCtx, roomType, dates); err != nil {
			var capErr *domain.CapacityError
			if errors.As(err, &capErr) {
				s.metrics.IncCapacityRejection("booking")
				s.logger.Info("Reserve: room_type=%d stay=%s unavailable, first conflict=%s",
					roomTypeID, stay, capErr.Date)
			}
			return err
		}

		if err := s.days.AddCommitted(txCtx, roomTypeID, dates, 1); err != nil {
			s.logger.Error("Reserve: failed to increment committed for room_type=%d: %v", roomTypeID, err)
			return fmt.Errorf("%w: Reserve - repository error: %w", ErrInternal, err)
		}

		s.logger.Info("Reserve: reserved room_type=%d stay=%s", roomTypeID, stay)
		return nil
	})
}

// Release уменьшает committed на каждую дату диапазона (не ниже нуля)
func (s *Service) Release(ctx context.Context, roomTypeID int64, stay domain.DateRange) error {
	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		dates := stay.Dates()
		if _, err := s.days.LockDays(txCtx, roomTypeID, dates); err != nil {
			s.logger.Error("Release: failed to lock days for room_type=%d: %v", roomTypeID, err)
			return fmt.Errorf("%w: Release - repository error: %w", ErrInternal, err)
		}

		if err := s.days.AddCommitted(txCtx, roomTypeID, dates, -1); err != nil {
			s.logger.Error("Release: failed to decrement committed for room_type=%d: %v", roomTypeID, err)
			return fmt.Errorf("%w: Release - repository error: %w", ErrInternal, err)
		}

		s.logger.Info("Release: released room_type=%d stay=%s", roomTypeID, stay)
		return nil
	})
}

// ApplyExternalHold учитывает блокировку OTA в счетчиках и сохраняет ее
// Блокировка без типа номера применяется ко всем типам по принципу все или ничего.
// Если места не хватает, возвращается *domain.CapacityError: новая блокировка сохраняется с Applied=false,
// а ранее примененная сохраняет прежние диапазон и эффект до следующего импорта
func (s *Service) ApplyExternalHold(ctx context.Context, hold *domain.ExternalHold) error {
	if hold.Range().Nights() <= 0 {
		return fmt.Errorf("%w: empty hold range %s", ErrInvalidInput, hold.Range())
	}

	var conflict *domain.CapacityError

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := s.holds.Get(txCtx, hold.Source, hold.ExternalID)
		if err != nil && !errors.Is(err, domain.ErrHoldNotFound) {
			s.logger.Error("ApplyExternalHold: failed to get hold %s/%s: %v", hold.Source, hold.ExternalID, err)
			return fmt.Errorf("%w: ApplyExternalHold - repository error: %w", ErrInternal, err)
		}
		keepPrevious := existing != nil && existing.Applied
		if keepPrevious {
			// Сначала снимаем прежний эффект, чтобы не посчитать блокировку дважды
			if err := s.removeHold(txCtx, existing); err != nil {
				return err
			}
		}

		roomTypes, err := s.holdRoomTypes(txCtx, hold)
		if err != nil {
			return err
		}

		dates := hold.Range().Dates()
		for _, rt := range roomTypes {
			err := s.lockAndCheck(txCtx, rt, dates)
			if err == nil {
				continue
			}
			if !errors.As(err, &conflict) {
				return err
			}
			break
		}

		if conflict != nil {
			s.metrics.IncCapacityRejection("hold")
			s.logger.Warn("ApplyExternalHold: overbooking conflict for hold %s/%s range=%s at room_type=%d date=%s",
				hold.Source, hold.ExternalID, hold.Range(), conflict.RoomTypeID, conflict.Date)

			if keepPrevious {
				// Проданные на OTA ночи остаются закрытыми, запись блокировки не меняется
				return s.restoreHold(txCtx, existing)
			}

			// Блокировка сохраняется неприменённой и будет повторена при следующем импорте
			hold.Applied = false
			hold.AppliedRoomTypeIDs = nil
			if err := s.holds.Upsert(txCtx, hold); err != nil {
				return fmt.Errorf("%w: ApplyExternalHold - repository error: %w", ErrInternal, err)
			}
			return nil
		}

		ids := make([]int64, 0, len(roomTypes))
		for _, rt := range roomTypes {
			if err := s.days.AddExternalHold(txCtx, rt.ID, dates, 1); err != nil {
				s.logger.Error("ApplyExternalHold: failed to increment hold for room_type=%d: %v", rt.ID, err)
				return fmt.Errorf("%w: ApplyExternalHold - repository error: %w", ErrInternal, err)
			}
			ids = append(ids, rt.ID)
		}

		hold.Applied = true
		hold.AppliedRoomTypeIDs = ids
		if err := s.holds.Upsert(txCtx, hold); err != nil {
			s.logger.Error("ApplyExternalHold: failed to save hold %s/%s: %v", hold.Source, hold.ExternalID, err)
			return fmt.Errorf("%w: ApplyExternalHold - repository error: %w", ErrInternal, err)
		}

		s.logger.Info("ApplyExternalHold: applied hold %s/%s range=%s room_types=%d",
			hold.Source, hold.ExternalID, hold.Range(), len(roomTypes))
		return nil
	})
	if err != nil {
		return err
	}
	if conflict != nil {
		return conflict
	}
	return nil
}

// ClearExternalHold снимает эффект блокировки и удаляет ее
// Неизвестная блокировка не является ошибкой
func (s *Service) ClearExternalHold(ctx context.Context, source, externalID string) error {
	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		hold, err := s.holds.Get(txCtx, source, externalID)
		if errors.Is(err, domain.ErrHoldNotFound) {
			s.logger.Info("ClearExternalHold: hold %s/%s not found, nothing to clear", source, externalID)
			return nil
		}
		if err != nil {
			s.logger.Error("ClearExternalHold: failed to get hold %s/%s: %v", source, externalID, err)
			return fmt.Errorf("%w: ClearExternalHold - repository error: %w", ErrInternal, err)
		}

		if hold.Applied {
			if err := s.removeHold(txCtx, hold); err != nil {
				return err
			}
		}

		if err := s.holds.Delete(txCtx, source, externalID); err != nil {
			s.logger.Error("ClearExternalHold: failed to delete hold %s/%s: %v", source, externalID, err)
			return fmt.Errorf("%w: ClearExternalHold - repository error: %w", ErrInternal, err)
		}

		s.logger.Info("ClearExternalHold: cleared hold %s/%s range=%s", source, externalID, hold.Range())
		return nil
	})
}

// GetAvailability возвращает счетчики на каждую дату диапазона
// Даты без строк в хранилище считаются свободными
func (s *Service) GetAvailability(ctx context.Context, roomTypeID int64, r domain.DateRange) ([]*domain.AvailabilityDay, error) {
	roomType, err := s.getRoomType(ctx, "GetAvailability", roomTypeID)
	if err != nil {
		return nil, err
	}

	stored, err := s.days.ListDays(ctx, roomTypeID, r.Start, r.End)
	if err != nil {
		s.logger.Error("GetAvailability: repository error for room_type=%d: %v", roomTypeID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %w", ErrInternal, err)
	}

	byDate := make(map[types.Date]*domain.AvailabilityDay, len(stored))
	for _, d := range stored {
		byDate[d.Date] = d
	}

	dates := r.Dates()
	result := make([]*domain.AvailabilityDay, 0, len(dates))
	for _, date := range dates {
		day := &domain.AvailabilityDay{RoomTypeID: roomTypeID, Date: date}
		if d, ok := byDate[date]; ok {
			day.Committed = d.Committed
			day.ExternalHold = d.ExternalHold
		}
		day.Capacity = roomType.TotalRooms
		result = append(result, day)
	}

	return result, nil
}

// lockAndCheck блокирует строки дат и проверяет, что помещается еще один номер
func (s *Service) lockAndCheck(ctx context.Context, roomType *domain.RoomType, dates []types.Date) error {
	days, err := s.days.LockDays(ctx, roomType.ID, dates)
	if err != nil {
		s.logger.Error("lockAndCheck: failed to lock days for room_type=%d: %v", roomType.ID, err)
		return fmt.Errorf("%w: lockAndCheck - repository error: %w", ErrInternal, err)
	}

	for _, day := range days {
		day.Capacity = roomType.TotalRooms
		if !day.CanAccept(1) {
			return &domain.CapacityError{RoomTypeID: roomType.ID, Date: day.Date}
		}
	}

	return nil
}

// removeHold уменьшает external_hold ровно для тех типов номеров, к которым блокировка была применена
func (s *Service) removeHold(ctx context.Context, hold *domain.ExternalHold) error {
	dates := hold.Range().Dates()
	for _, id := range hold.AppliedRoomTypeIDs {
		if _, err := s.days.LockDays(ctx, id, dates); err != nil {
			return fmt.Errorf("%w: removeHold - repository error: %w", ErrInternal, err)
		}
		if err := s.days.AddExternalHold(ctx, id, dates, -1); err != nil {
			s.logger.Error("removeHold: failed to decrement hold for room_type=%d: %v", id, err)
			return fmt.Errorf("%w: removeHold - repository error: %w", ErrInternal, err)
		}
	}

	return nil
}

// restoreHold возвращает эффект блокировки, снятый через removeHold в той же транзакции
func (s *Service) restoreHold(ctx context.Context, hold *domain.ExternalHold) error {
	dates := hold.Range().Dates()
	for _, id := range hold.AppliedRoomTypeIDs {
		if err := s.days.AddExternalHold(ctx, id, dates, 1); err != nil {
			s.logger.Error("restoreHold: failed to restore hold for room_type=%d: %v", id, err)
			return fmt.Errorf("%w: restoreHold - repository error: %w", ErrInternal, err)
		}
	}

	return nil
}

// holdRoomTypes типы номеров, на которые действует блокировка
// Без типа номера блокировка действует на все типы, включая неактивные
func (s *Service) holdRoomTypes(ctx context.Context, hold *domain.ExternalHold) ([]*domain.RoomType, error) {
	if hold.RoomTypeID != nil {
		rt, err := s.getRoomType(ctx, "holdRoomTypes", *hold.RoomTypeID)
		if err != nil {
			return nil, err
		}
		return []*domain.RoomType{rt}, nil
	}

	all, err := s.roomTypes.List(ctx, false)
	if err != nil {
		s.logger.Error("holdRoomTypes: failed to list room types: %v", err)
		return nil, fmt.Errorf("%w: holdRoomTypes - repository error: %w", ErrInternal, err)
	}
	return all, nil
}

func (s *Service) getRoomType(ctx context.Context, op string, id int64) (*domain.RoomType, error) {
	rt, err := s.roomTypes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRoomTypeNotFound) {
			s.logger.Warn("%s: room_type id=%d not found", op, id)
			return nil, domain.ErrRoomTypeNotFound
		}
		s.logger.Error("%s: repository error for room_type id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return rt, nil
}
