package domain

import (
	"time"

	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// ExternalHold блокировка, импортированная из календаря OTA
// Уникальна по (Source, ExternalID)
type ExternalHold struct {
	ID         int64
	Source     string
	ExternalID string
	RoomTypeID *int64 // nil = все типы номеров
	Start      types.Date
	End        types.Date // не включительно
	Note       string
	Applied    bool // учитывается ли блокировка в счетчиках
	// AppliedRoomTypeIDs типы номеров, в счетчиках которых учтена блокировка
	AppliedRoomTypeIDs []int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Range диапазон блокировки
func (h *ExternalHold) Range() DateRange {
	return DateRange{Start: h.Start, End: h.End}
}

// AppliesToAllRoomTypes true, если фид не разделяет типы номеров
func (h *ExternalHold) AppliesToAllRoomTypes() bool {
	return h.RoomTypeID == nil
}

// SameScope сравнивает область действия двух блокировок
func (h *ExternalHold) SameScope(other *ExternalHold) bool {
	if h.RoomTypeID == nil || other.RoomTypeID == nil {
		return h.RoomTypeID == nil && other.RoomTypeID == nil
	}
	return *h.RoomTypeID == *other.RoomTypeID
}
