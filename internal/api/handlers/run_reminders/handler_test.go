package run_reminders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	sendReminders "github.com/m04kA/SMC-HotelService/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *sendReminders.Request) (*domain.ReminderRunRecord, error) {
	args := m.Called(ctx, req)
	rec, _ := args.Get(0).(*domain.ReminderRunRecord)
	return rec, args.Error(1)
}

func (m *useCaseMock) ExecuteAll(ctx context.Context, trigger domain.ReminderTrigger) ([]*domain.ReminderRunRecord, error) {
	args := m.Called(ctx, trigger)
	recs, _ := args.Get(0).([]*domain.ReminderRunRecord)
	return recs, args.Error(1)
}

func serve(uc SendRemindersUseCase, category string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/jobs/reminders/"+category, nil)
	req = mux.SetURLVars(req, map[string]string{"category": category})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_SingleCategory(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, &sendReminders.Request{
		Category: string(domain.ReminderCheckIn),
		Trigger:  domain.TriggerManual,
	}).Return(&domain.ReminderRunRecord{
		RunID:    uuid.New(),
		Category: domain.ReminderCheckIn,
		Trigger:  domain.TriggerManual,
		RunDate:  types.MustParseDate("2026-01-14"),
		Notified: []int64{4},
	}, nil)

	rec := serve(uc, string(domain.ReminderCheckIn))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []int64{4}, resp.Notified)
	assert.Equal(t, []int64{}, resp.Skipped)
	assert.Equal(t, "2026-01-14", resp.RunDate)
	uc.AssertExpectations(t)
}

func TestHandle_All(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("ExecuteAll", mock.Anything, domain.TriggerManual).Return([]*domain.ReminderRunRecord{
		{Category: domain.ReminderConfirmation},
		{Category: domain.ReminderPaymentOverdue},
	}, nil)

	rec := serve(uc, CategoryAll)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RunsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Runs, 2)
}

func TestHandle_UnknownCategory(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: birthday", domain.ErrUnknownReminderCategory))

	rec := serve(uc, "birthday")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
