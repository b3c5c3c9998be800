package domain

// Значения по умолчанию
const (
	DefaultConfirmationReminderHours = 24
	DefaultPaymentGraceDays          = 3
	DefaultCurrency                  = "TWD"
)

// Ограничения бизнес-валидации
const (
	MinGuestCount               = 1
	MaxStayNights               = 30
	MaxGuestNameLength          = 100
	MaxSpecialRequestsLength    = 500
	MaxCancellationReasonLength = 500
	MaxHoldNoteLength           = 255
)

// Формат даты
const DateFormat = "2006-01-02"

// InactiveStatuses бронирования, не удерживающие номер
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses бронирования, удерживающие номер
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusPaymentPending,
	StatusPaid,
	StatusCashOnSite,
	StatusCompleted,
}
