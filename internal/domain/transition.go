package domain

import "fmt"

// Action действие над бронированием
type Action string

const (
	ActionConfirm            Action = "confirm"
	ActionSelectBankTransfer Action = "select_bank_transfer"
	ActionSelectCashOnSite   Action = "select_cash_on_site"
	ActionConfirmPayment     Action = "confirm_payment"
	ActionCheckIn            Action = "check_in"
	ActionCancel             Action = "cancel"
)

// AllActions все действия конечного автомата
var AllActions = []Action{
	ActionConfirm,
	ActionSelectBankTransfer,
	ActionSelectCashOnSite,
	ActionConfirmPayment,
	ActionCheckIn,
	ActionCancel,
}

// transitions action -> (исходный статус -> новый статус)
var transitions = map[Action]map[BookingStatus]BookingStatus{
	ActionConfirm: {
		StatusPending: StatusConfirmed,
	},
	ActionSelectBankTransfer: {
		StatusConfirmed: StatusPaymentPending,
	},
	ActionSelectCashOnSite: {
		StatusConfirmed: StatusCashOnSite,
	},
	ActionConfirmPayment: {
		StatusPaymentPending: StatusPaid,
	},
	ActionCheckIn: {
		StatusPaid:       StatusCompleted,
		StatusCashOnSite: StatusCompleted,
	},
	ActionCancel: {
		StatusPending:        StatusCancelled,
		StatusConfirmed:      StatusCancelled,
		StatusPaymentPending: StatusCancelled,
		StatusPaid:           StatusCancelled,
		StatusCashOnSite:     StatusCancelled,
	},
}

// NextStatus возвращает статус после действия или ErrInvalidTransition
func NextStatus(current BookingStatus, action Action) (BookingStatus, error) {
	next, ok := transitions[action][current]
	if !ok {
		return "", fmt.Errorf("%w: cannot %s booking in status %s", ErrInvalidTransition, action, current)
	}
	return next, nil
}

// SourceStatuses статусы, из которых действие допустимо
func SourceStatuses(action Action) []BookingStatus {
	var result []BookingStatus
	for _, st := range AllStatuses {
		if _, ok := transitions[action][st]; ok {
			result = append(result, st)
		}
	}
	return result
}

// ActionForPaymentMethod действие выбора способа оплаты
func ActionForPaymentMethod(method PaymentMethod) (Action, error) {
	switch method {
	case PaymentMethodBankTransfer:
		return ActionSelectBankTransfer, nil
	case PaymentMethodCashOnSite:
		return ActionSelectCashOnSite, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}
