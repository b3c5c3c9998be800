package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// HoldRepository внешние блокировки в памяти
type HoldRepository struct {
	store *Store
}

// Get возвращает блокировку по (source, externalID)
func (r *HoldRepository) Get(ctx context.Context, source, externalID string) (*domain.ExternalHold, error) {
	var result *domain.ExternalHold
	err := r.store.with(ctx, func(st *state) error {
		h, ok := st.holds[holdKey{source, externalID}]
		if !ok {
			return domain.ErrHoldNotFound
		}
		h.AppliedRoomTypeIDs = slices.Clone(h.AppliedRoomTypeIDs)
		result = &h
		return nil
	})
	return result, err
}

// ListBySource возвращает блокировки источника, упорядоченные по external id
func (r *HoldRepository) ListBySource(ctx context.Context, source string) ([]*domain.ExternalHold, error) {
	var result []*domain.ExternalHold
	err := r.store.with(ctx, func(st *state) error {
		for k, h := range st.holds {
			if k.source != source {
				continue
			}
			h := h
			h.AppliedRoomTypeIDs = slices.Clone(h.AppliedRoomTypeIDs)
			result = append(result, &h)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ExternalID < result[j].ExternalID })
	return result, err
}

// Upsert создает или заменяет блокировку по (source, externalID)
func (r *HoldRepository) Upsert(ctx context.Context, hold *domain.ExternalHold) error {
	return r.store.with(ctx, func(st *state) error {
		k := holdKey{hold.Source, hold.ExternalID}
		now := r.store.now()
		if existing, ok := st.holds[k]; ok {
			hold.ID = existing.ID
			hold.CreatedAt = existing.CreatedAt
		} else {
			st.holdSeq++
			hold.ID = st.holdSeq
			hold.CreatedAt = now
		}
		hold.UpdatedAt = now
		stored := *hold
		stored.AppliedRoomTypeIDs = slices.Clone(hold.AppliedRoomTypeIDs)
		st.holds[k] = stored
		return nil
	})
}

// Delete удаляет блокировку
func (r *HoldRepository) Delete(ctx context.Context, source, externalID string) error {
	return r.store.with(ctx, func(st *state) error {
		delete(st.holds, holdKey{source, externalID})
		return nil
	})
}
