package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus_DeclaredTransitions(t *testing.T) {
	tests := []struct {
		from   BookingStatus
		action Action
		want   BookingStatus
	}{
		{StatusPending, ActionConfirm, StatusConfirmed},
		{StatusConfirmed, ActionSelectBankTransfer, StatusPaymentPending},
		{StatusConfirmed, ActionSelectCashOnSite, StatusCashOnSite},
		{StatusPaymentPending, ActionConfirmPayment, StatusPaid},
		{StatusPaid, ActionCheckIn, StatusCompleted},
		{StatusCashOnSite, ActionCheckIn, StatusCompleted},
		{StatusPending, ActionCancel, StatusCancelled},
		{StatusConfirmed, ActionCancel, StatusCancelled},
		{StatusPaymentPending, ActionCancel, StatusCancelled},
		{StatusPaid, ActionCancel, StatusCancelled},
		{StatusCashOnSite, ActionCancel, StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			got, err := NextStatus(tt.from, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextStatus_EveryOtherPairIsInvalid(t *testing.T) {
	allowed := map[Action]map[BookingStatus]bool{
		ActionConfirm:            {StatusPending: true},
		ActionSelectBankTransfer: {StatusConfirmed: true},
		ActionSelectCashOnSite:   {StatusConfirmed: true},
		ActionConfirmPayment:     {StatusPaymentPending: true},
		ActionCheckIn:            {StatusPaid: true, StatusCashOnSite: true},
		ActionCancel: {
			StatusPending: true, StatusConfirmed: true, StatusPaymentPending: true,
			StatusPaid: true, StatusCashOnSite: true,
		},
	}

	for _, action := range AllActions {
		for _, status := range AllStatuses {
			_, err := NextStatus(status, action)
			if allowed[action][status] {
				assert.NoError(t, err, "%s from %s", action, status)
				continue
			}
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s from %s", action, status)
		}
	}
}

func TestNextStatus_TerminalStatesAcceptNothing(t *testing.T) {
	for _, status := range []BookingStatus{StatusCompleted, StatusCancelled} {
		for _, action := range AllActions {
			_, err := NextStatus(status, action)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}
	}
}

func TestSourceStatuses(t *testing.T) {
	assert.Equal(t, []BookingStatus{StatusPaid, StatusCashOnSite}, SourceStatuses(ActionCheckIn))
	assert.Len(t, SourceStatuses(ActionCancel), 5)
}

func TestActionForPaymentMethod(t *testing.T) {
	a, err := ActionForPaymentMethod(PaymentMethodBankTransfer)
	require.NoError(t, err)
	assert.Equal(t, ActionSelectBankTransfer, a)

	a, err = ActionForPaymentMethod(PaymentMethodCashOnSite)
	require.NoError(t, err)
	assert.Equal(t, ActionSelectCashOnSite, a)

	_, err = ActionForPaymentMethod("crypto")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}
