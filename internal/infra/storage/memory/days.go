package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// DayRepository дневные счетчики в памяти
type DayRepository struct {
	store *Store
}

// LockDays возвращает счетчики на даты; блокировка обеспечивается транзакцией хранилища
func (r *DayRepository) LockDays(ctx context.Context, roomTypeID int64, dates []types.Date) ([]*domain.AvailabilityDay, error) {
	sorted := append([]types.Date(nil), dates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	result := make([]*domain.AvailabilityDay, 0, len(sorted))
	err := r.store.with(ctx, func(st *state) error {
		for _, d := range sorted {
			c := st.days[dayKey{roomTypeID, d}]
			result = append(result, &domain.AvailabilityDay{
				RoomTypeID:   roomTypeID,
				Date:         d,
				Committed:    c.committed,
				ExternalHold: c.externalHold,
			})
		}
		return nil
	})
	return result, err
}

// ListDays возвращает строки с ненулевыми счетчиками в [from, to)
func (r *DayRepository) ListDays(ctx context.Context, roomTypeID int64, from, to types.Date) ([]*domain.AvailabilityDay, error) {
	var result []*domain.AvailabilityDay
	err := r.store.with(ctx, func(st *state) error {
		for k, c := range st.days {
			if k.roomTypeID != roomTypeID || k.date.Before(from) || !k.date.Before(to) {
				continue
			}
			result = append(result, &domain.AvailabilityDay{
				RoomTypeID:   roomTypeID,
				Date:         k.date,
				Committed:    c.committed,
				ExternalHold: c.externalHold,
			})
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, err
}

// AddCommitted изменяет committed, не опускаясь ниже нуля
func (r *DayRepository) AddCommitted(ctx context.Context, roomTypeID int64, dates []types.Date, delta int) error {
	return r.store.with(ctx, func(st *state) error {
		for _, d := range dates {
			k := dayKey{roomTypeID, d}
			c := st.days[k]
			c.committed = max(c.committed+delta, 0)
			st.days[k] = c
		}
		return nil
	})
}

// AddExternalHold изменяет external_hold, не опускаясь ниже нуля
func (r *DayRepository) AddExternalHold(ctx context.Context, roomTypeID int64, dates []types.Date, delta int) error {
	return r.store.with(ctx, func(st *state) error {
		for _, d := range dates {
			k := dayKey{roomTypeID, d}
			c := st.days[k]
			c.externalHold = max(c.externalHold+delta, 0)
			st.days[k] = c
		}
		return nil
	})
}
