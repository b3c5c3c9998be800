package memory

import (
	"context"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// ReminderLogRepository журнал напоминаний в памяти
type ReminderLogRepository struct {
	store *Store
}

// Claim резервирует отправку напоминания; false, если оно уже отправлено в этот день
func (r *ReminderLogRepository) Claim(ctx context.Context, bookingID int64, category domain.ReminderCategory, runDate types.Date) (bool, error) {
	claimed := false
	err := r.store.with(ctx, func(st *state) error {
		k := reminderKey{bookingID, category, runDate}
		if _, exists := st.reminders[k]; exists {
			return nil
		}
		st.reminders[k] = r.store.now()
		claimed = true
		return nil
	})
	return claimed, err
}

// Release снимает резерв после неудачной доставки
func (r *ReminderLogRepository) Release(ctx context.Context, bookingID int64, category domain.ReminderCategory, runDate types.Date) error {
	return r.store.with(ctx, func(st *state) error {
		delete(st.reminders, reminderKey{bookingID, category, runDate})
		return nil
	})
}
