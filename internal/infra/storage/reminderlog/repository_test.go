package reminderlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/infra/storage/pgtest"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

func TestRepository_ClaimOncePerDay(t *testing.T) {
	db := pgtest.Open(t)
	pgtest.SeedRoomType(t, db, 1, 2)
	bookingID := pgtest.SeedBooking(t, db, 1)
	repo := NewRepository(db)
	ctx := context.Background()

	today := types.MustParseDate("2026-01-14")

	claimed, err := repo.Claim(ctx, bookingID, domain.ReminderCheckIn, today)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.Claim(ctx, bookingID, domain.ReminderCheckIn, today)
	require.NoError(t, err)
	assert.False(t, claimed)

	claimed, err = repo.Claim(ctx, bookingID, domain.ReminderCheckIn, today.AddDays(1))
	require.NoError(t, err)
	assert.True(t, claimed)

	require.NoError(t, repo.Release(ctx, bookingID, domain.ReminderCheckIn, today))
	claimed, err = repo.Claim(ctx, bookingID, domain.ReminderCheckIn, today)
	require.NoError(t, err)
	assert.True(t, claimed)
}
