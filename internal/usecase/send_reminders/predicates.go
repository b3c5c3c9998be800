package send_reminders

import (
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// Moment момент запуска: текущее время и операционная дата отеля
type Moment struct {
	Now   time.Time
	Today types.Date
}

// Matches проверяет, должна ли бронь получить напоминание категории
func Matches(category domain.ReminderCategory, b *domain.Booking, at Moment, cfg Config) bool {
	switch category {
	case domain.ReminderConfirmation:
		return b.Status == domain.StatusPending && at.Now.Sub(b.CreatedAt) > cfg.ConfirmationAfter
	case domain.ReminderPaymentOverdue:
		return b.Status == domain.StatusPaymentPending && IsOverdue(b, at.Now, cfg.PaymentGraceDays)
	case domain.ReminderCheckIn:
		return (b.Status == domain.StatusPaid || b.Status == domain.StatusCashOnSite) &&
			b.CheckIn == at.Today.AddDays(1)
	case domain.ReminderCheckOutThanks:
		return b.Status != domain.StatusCancelled && b.CheckOut == at.Today
	default:
		return false
	}
}

// IsOverdue ровно grace*24h еще не просрочка
func IsOverdue(b *domain.Booking, now time.Time, graceDays int) bool {
	return now.Sub(b.CreatedAt) > time.Duration(graceDays)*24*time.Hour
}

// Select отбирает брони категории
func Select(category domain.ReminderCategory, bookings []*domain.Booking, at Moment, cfg Config) []*domain.Booking {
	var result []*domain.Booking
	for _, b := range bookings {
		if Matches(category, b, at, cfg) {
			result = append(result, b)
		}
	}
	return result
}

// candidateFilter сужает выборку из хранилища, окончательное решение за Matches
func candidateFilter(category domain.ReminderCategory, today types.Date) domain.BookingFilter {
	switch category {
	case domain.ReminderConfirmation:
		return domain.BookingFilter{Statuses: []domain.BookingStatus{domain.StatusPending}}
	case domain.ReminderPaymentOverdue:
		return domain.BookingFilter{Statuses: []domain.BookingStatus{domain.StatusPaymentPending}}
	case domain.ReminderCheckIn:
		tomorrow := today.AddDays(1)
		return domain.BookingFilter{
			Statuses:  []domain.BookingStatus{domain.StatusPaid, domain.StatusCashOnSite},
			CheckInOn: &tomorrow,
		}
	default:
		return domain.BookingFilter{
			Statuses: []domain.BookingStatus{
				domain.StatusPending, domain.StatusConfirmed, domain.StatusPaymentPending,
				domain.StatusPaid, domain.StatusCashOnSite, domain.StatusCompleted,
			},
			CheckOutOn: &today,
		}
	}
}
