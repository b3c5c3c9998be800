package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// RoomTypeRepository типы номеров в памяти
type RoomTypeRepository struct {
	store *Store
}

// GetByID возвращает тип номера
func (r *RoomTypeRepository) GetByID(ctx context.Context, id int64) (*domain.RoomType, error) {
	var result *domain.RoomType
	err := r.store.with(ctx, func(st *state) error {
		rt, ok := st.roomTypes[id]
		if !ok {
			return domain.ErrRoomTypeNotFound
		}
		result = &rt
		return nil
	})
	return result, err
}

// List возвращает типы номеров по возрастанию id
func (r *RoomTypeRepository) List(ctx context.Context, activeOnly bool) ([]*domain.RoomType, error) {
	var result []*domain.RoomType
	err := r.store.with(ctx, func(st *state) error {
		for _, rt := range st.roomTypes {
			if activeOnly && !rt.Active {
				continue
			}
			rt := rt
			result = append(result, &rt)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, err
}

// Upsert создает или обновляет тип номера по id
func (r *RoomTypeRepository) Upsert(ctx context.Context, rt *domain.RoomType) error {
	return r.store.with(ctx, func(st *state) error {
		now := r.store.now()
		saved := *rt
		if existing, ok := st.roomTypes[rt.ID]; ok {
			saved.CreatedAt = existing.CreatedAt
		} else {
			saved.CreatedAt = now
		}
		saved.UpdatedAt = now
		st.roomTypes[rt.ID] = saved
		*rt = saved
		return nil
	})
}
