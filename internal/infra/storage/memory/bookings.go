package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
}

// Create сохраняет бронирование и присваивает id
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	err := r.store.with(ctx, func(st *state) error {
		st.bookingSeq++
		now := r.store.now()
		booking.ID = st.bookingSeq
		booking.CreatedAt = now
		booking.UpdatedAt = now
		st.bookings[booking.ID] = *booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// GetByID возвращает копию бронирования
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var result *domain.Booking
	err := r.store.with(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return domain.ErrBookingNotFound
		}
		result = &b
		return nil
	})
	return result, err
}

// List возвращает бронирования по фильтру, упорядоченные по id
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	err := r.store.with(ctx, func(st *state) error {
		for _, b := range st.bookings {
			if !matches(&b, filter) {
				continue
			}
			b := b
			result = append(result, &b)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, err
}

// UpdateStatus меняет статус, только если текущий статус равен from
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	return r.store.with(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return domain.ErrBookingNotFound
		}
		if b.Status != from {
			return fmt.Errorf("%w: status changed concurrently, expected %s got %s",
				domain.ErrInvalidTransition, from, b.Status)
		}
		b.Status = to
		b.UpdatedAt = r.store.now()
		st.bookings[id] = b
		return nil
	})
}

// Cancel переводит бронирование в cancelled, только если текущий статус равен from
func (r *BookingRepository) Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason *string, at time.Time) error {
	return r.store.with(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return domain.ErrBookingNotFound
		}
		if b.Status != from {
			return fmt.Errorf("%w: status changed concurrently, expected %s got %s",
				domain.ErrInvalidTransition, from, b.Status)
		}
		b.Status = domain.StatusCancelled
		b.CancellationReason = reason
		b.CancelledAt = &at
		b.UpdatedAt = r.store.now()
		st.bookings[id] = b
		return nil
	})
}

func matches(b *domain.Booking, f domain.BookingFilter) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if b.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.RoomTypeID != nil && b.RoomTypeID != *f.RoomTypeID {
		return false
	}
	if f.CheckInOn != nil && b.CheckIn != *f.CheckInOn {
		return false
	}
	if f.CheckOutOn != nil && b.CheckOut != *f.CheckOutOn {
		return false
	}
	return true
}
