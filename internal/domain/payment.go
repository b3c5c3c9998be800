package domain

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// PaymentStatus статус платежа
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusReceived PaymentStatus = "received"
)

// FragmentLength длина фрагмента номера счета
const FragmentLength = 5

var fragmentPattern = regexp.MustCompile(`^\d{5}$`)

// PaymentDetail платежные данные бронирования
// Сверка по последним пяти цифрам носит справочный характер: деньги не двигаются
type PaymentDetail struct {
	ID          int64
	BookingID   int64
	Method      PaymentMethod
	Amount      decimal.Decimal
	Status      PaymentStatus
	BankName    string
	BankAccount string
	LastFive    *string
	SubmittedAt *time.Time
	ConfirmedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasFragment true, если гость прислал фрагмент перевода
func (p *PaymentDetail) HasFragment() bool {
	return p.LastFive != nil && *p.LastFive != ""
}

// IsReceived true, если оплата подтверждена
func (p *PaymentDetail) IsReceived() bool {
	return p.Status == PaymentStatusReceived
}

// Причины отказа во фрагменте, все они ErrInvalidFormat
var (
	ErrFragmentEmpty     = fmt.Errorf("%w: fragment is empty", ErrInvalidFormat)
	ErrFragmentNotDigits = fmt.Errorf("%w: fragment must contain only digits 0-9", ErrInvalidFormat)
	ErrFragmentLength    = fmt.Errorf("%w: fragment must be exactly %d digits", ErrInvalidFormat, FragmentLength)
)

// ValidateFragment проверяет, что фрагмент ровно пять цифр
// Ошибка содержит причину отказа
func ValidateFragment(fragment string) error {
	if fragmentPattern.MatchString(fragment) {
		return nil
	}

	switch {
	case fragment == "":
		return ErrFragmentEmpty
	case !onlyDigits(fragment):
		return ErrFragmentNotDigits
	default:
		return fmt.Errorf("%w, got %d", ErrFragmentLength, utf8.RuneCountInString(fragment))
	}
}

func onlyDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
