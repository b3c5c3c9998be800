package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// HolidayOverrideRepository ручные пометки праздников в памяти
type HolidayOverrideRepository struct {
	store *Store
}

// ListRange возвращает пометки в [from, to)
func (r *HolidayOverrideRepository) ListRange(ctx context.Context, from, to types.Date) ([]domain.HolidayOverride, error) {
	var result []domain.HolidayOverride
	err := r.store.with(ctx, func(st *state) error {
		for d, o := range st.overrides {
			if d.Before(from) || !d.Before(to) {
				continue
			}
			result = append(result, o)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, err
}

// Upsert сохраняет пометку на дату
func (r *HolidayOverrideRepository) Upsert(ctx context.Context, o domain.HolidayOverride) error {
	return r.store.with(ctx, func(st *state) error {
		st.overrides[o.Date] = o
		return nil
	})
}

// Delete удаляет пометку на дату
func (r *HolidayOverrideRepository) Delete(ctx context.Context, date types.Date) error {
	return r.store.with(ctx, func(st *state) error {
		delete(st.overrides, date)
		return nil
	})
}
