// Package memory хранилище в памяти процесса.
//
// Реализует те же репозитории, что и PostgreSQL, и менеджер транзакций.
// Транзакция удерживает общую блокировку хранилища до завершения и при ошибке
// восстанавливает снимок состояния, поэтому все транзакции строго последовательны.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

type txKey struct{}

type dayKey struct {
	roomTypeID int64
	date       types.Date
}

type dayCounts struct {
	committed    int
	externalHold int
}

type holdKey struct {
	source     string
	externalID string
}

type reminderKey struct {
	bookingID int64
	category  domain.ReminderCategory
	runDate   types.Date
}

type state struct {
	roomTypes map[int64]domain.RoomType
	bookings  map[int64]domain.Booking
	days      map[dayKey]dayCounts
	payments  map[int64]domain.PaymentDetail // по booking id
	holds     map[holdKey]domain.ExternalHold
	overrides map[types.Date]domain.HolidayOverride
	reminders map[reminderKey]time.Time

	bookingSeq int64
	paymentSeq int64
	holdSeq    int64
}

func newState() *state {
	return &state{
		roomTypes: make(map[int64]domain.RoomType),
		bookings:  make(map[int64]domain.Booking),
		days:      make(map[dayKey]dayCounts),
		payments:  make(map[int64]domain.PaymentDetail),
		holds:     make(map[holdKey]domain.ExternalHold),
		overrides: make(map[types.Date]domain.HolidayOverride),
		reminders: make(map[reminderKey]time.Time),
	}
}

// clone копирует состояние; значения в map хранятся по значению,
// указатели внутри сущностей никогда не изменяются на месте
func (s *state) clone() *state {
	c := &state{
		roomTypes:  make(map[int64]domain.RoomType, len(s.roomTypes)),
		bookings:   make(map[int64]domain.Booking, len(s.bookings)),
		days:       make(map[dayKey]dayCounts, len(s.days)),
		payments:   make(map[int64]domain.PaymentDetail, len(s.payments)),
		holds:      make(map[holdKey]domain.ExternalHold, len(s.holds)),
		overrides:  make(map[types.Date]domain.HolidayOverride, len(s.overrides)),
		reminders:  make(map[reminderKey]time.Time, len(s.reminders)),
		bookingSeq: s.bookingSeq,
		paymentSeq: s.paymentSeq,
		holdSeq:    s.holdSeq,
	}
	for k, v := range s.roomTypes {
		c.roomTypes[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.days {
		c.days[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.holds {
		c.holds[k] = v
	}
	for k, v := range s.overrides {
		c.overrides[k] = v
	}
	for k, v := range s.reminders {
		c.reminders[k] = v
	}
	return c
}

// Store хранилище в памяти
type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		state: newState(),
		now:   time.Now,
	}
}

// with выполняет fn над состоянием; вне транзакции берет блокировку сам
func (s *Store) with(ctx context.Context, fn func(st *state) error) error {
	if inTx(ctx, s) {
		return fn(s.state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func inTx(ctx context.Context, s *Store) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// TxManager менеджер транзакций хранилища
func (s *Store) TxManager() *TxManager { return &TxManager{store: s} }

// RoomTypes репозиторий типов номеров
func (s *Store) RoomTypes() *RoomTypeRepository { return &RoomTypeRepository{store: s} }

// Bookings репозиторий бронирований
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{store: s} }

// Days репозиторий дневных счетчиков
func (s *Store) Days() *DayRepository { return &DayRepository{store: s} }

// Payments репозиторий платежных данных
func (s *Store) Payments() *PaymentRepository { return &PaymentRepository{store: s} }

// Holds репозиторий внешних блокировок
func (s *Store) Holds() *HoldRepository { return &HoldRepository{store: s} }

// HolidayOverrides репозиторий ручных пометок праздников
func (s *Store) HolidayOverrides() *HolidayOverrideRepository {
	return &HolidayOverrideRepository{store: s}
}

// ReminderLog журнал отправленных напоминаний
func (s *Store) ReminderLog() *ReminderLogRepository { return &ReminderLogRepository{store: s} }

// TxManager транзакции хранилища в памяти
type TxManager struct {
	store *Store
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn в транзакции (все транзакции последовательны)
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s := m.store
	if inTx(ctx, s) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	defer func() {
		if p := recover(); p != nil {
			s.state = snapshot
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}
