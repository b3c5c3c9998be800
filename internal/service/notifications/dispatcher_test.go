package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Notify(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) IncNotification(category, result string) {
	m.Called(category, result)
}

func testNotification() domain.Notification {
	b := &domain.Booking{
		ID:       7,
		Guest:    domain.GuestInfo{Name: "Chen Wei", Email: "wei@example.com"},
		CheckIn:  types.MustParseDate("2026-01-15"),
		CheckOut: types.MustParseDate("2026-01-16"),
	}
	return domain.NewNotification(b, domain.NotificationBookingCreated, nil, time.Now())
}

func TestDispatcher_Notify(t *testing.T) {
	t.Run("delivered", func(t *testing.T) {
		sink := new(mockSink)
		metrics := new(mockMetrics)
		n := testNotification()

		sink.On("Notify", mock.Anything, n).Return(nil)
		metrics.On("IncNotification", "booking_created", "sent").Return()

		err := NewDispatcher(sink, metrics, logger.NewNop()).Notify(context.Background(), n)

		assert.NoError(t, err)
		sink.AssertExpectations(t)
		metrics.AssertExpectations(t)
	})

	t.Run("sink failure is returned and counted", func(t *testing.T) {
		sink := new(mockSink)
		metrics := new(mockMetrics)
		n := testNotification()

		sink.On("Notify", mock.Anything, n).Return(errors.New("broker down"))
		metrics.On("IncNotification", "booking_created", "failed").Return()

		err := NewDispatcher(sink, metrics, logger.NewNop()).Notify(context.Background(), n)

		assert.Error(t, err)
		metrics.AssertExpectations(t)
	})
}

func TestNewNotification_Payload(t *testing.T) {
	n := testNotification()
	assert.Equal(t, int64(7), n.BookingID)
	assert.Equal(t, "wei@example.com", n.Recipient)
	assert.Equal(t, "Chen Wei", n.Payload["guest_name"])
	assert.Equal(t, "2026-01-15", n.Payload["check_in"])
	assert.NotEqual(t, [16]byte{}, [16]byte(n.ID))
}
