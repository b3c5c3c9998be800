package hold

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/infra/storage/pgtest"
	"github.com/m04kA/SMC-HotelService/pkg/ptr"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

func TestRepository_UpsertGetDelete(t *testing.T) {
	db := pgtest.Open(t)
	pgtest.SeedRoomType(t, db, 1, 2)
	repo := NewRepository(db)
	ctx := context.Background()

	h := &domain.ExternalHold{
		Source:             "booking_com",
		ExternalID:         "abc@booking.com",
		RoomTypeID:         ptr.Ptr(int64(1)),
		Start:              types.MustParseDate("2026-02-01"),
		End:                types.MustParseDate("2026-02-03"),
		Note:               "CLOSED - Not available",
		Applied:            true,
		AppliedRoomTypeIDs: []int64{1},
	}
	require.NoError(t, repo.Upsert(ctx, h))
	firstID := h.ID

	applied, err := repo.Get(ctx, "booking_com", "abc@booking.com")
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, applied.AppliedRoomTypeIDs)

	h.End = types.MustParseDate("2026-02-02")
	h.Applied = false
	h.AppliedRoomTypeIDs = nil
	require.NoError(t, repo.Upsert(ctx, h))
	assert.Equal(t, firstID, h.ID)

	got, err := repo.Get(ctx, "booking_com", "abc@booking.com")
	require.NoError(t, err)
	assert.Equal(t, types.MustParseDate("2026-02-02"), got.End)
	assert.False(t, got.Applied)
	assert.Equal(t, int64(1), ptr.Value(got.RoomTypeID))
	assert.Empty(t, got.AppliedRoomTypeIDs)

	require.NoError(t, repo.Upsert(ctx, &domain.ExternalHold{
		Source:     "booking_com",
		ExternalID: "aaa@booking.com",
		Start:      types.MustParseDate("2026-03-01"),
		End:        types.MustParseDate("2026-03-02"),
	}))
	require.NoError(t, repo.Upsert(ctx, &domain.ExternalHold{
		Source:     "airbnb",
		ExternalID: "zzz",
		Start:      types.MustParseDate("2026-03-01"),
		End:        types.MustParseDate("2026-03-02"),
	}))

	list, err := repo.ListBySource(ctx, "booking_com")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "aaa@booking.com", list[0].ExternalID)
	assert.True(t, list[0].AppliesToAllRoomTypes())

	require.NoError(t, repo.Delete(ctx, "booking_com", "abc@booking.com"))
	require.NoError(t, repo.Delete(ctx, "booking_com", "abc@booking.com"))

	_, err = repo.Get(ctx, "booking_com", "abc@booking.com")
	assert.ErrorIs(t, err, domain.ErrHoldNotFound)
}
