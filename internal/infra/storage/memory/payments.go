package memory

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// PaymentRepository платежные данные в памяти
type PaymentRepository struct {
	store *Store
}

// Create сохраняет платежные данные; у бронирования может быть только одна запись
func (r *PaymentRepository) Create(ctx context.Context, p *domain.PaymentDetail) (*domain.PaymentDetail, error) {
	err := r.store.with(ctx, func(st *state) error {
		if _, exists := st.payments[p.BookingID]; exists {
			return fmt.Errorf("memory: payment detail for booking %d already exists", p.BookingID)
		}
		st.paymentSeq++
		now := r.store.now()
		p.ID = st.paymentSeq
		p.CreatedAt = now
		p.UpdatedAt = now
		st.payments[p.BookingID] = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByBookingID возвращает платежные данные бронирования
func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.PaymentDetail, error) {
	var result *domain.PaymentDetail
	err := r.store.with(ctx, func(st *state) error {
		p, ok := st.payments[bookingID]
		if !ok {
			return domain.ErrPaymentNotFound
		}
		result = &p
		return nil
	})
	return result, err
}

// Update сохраняет изменения платежных данных
func (r *PaymentRepository) Update(ctx context.Context, p *domain.PaymentDetail) error {
	return r.store.with(ctx, func(st *state) error {
		if _, ok := st.payments[p.BookingID]; !ok {
			return domain.ErrPaymentNotFound
		}
		p.UpdatedAt = r.store.now()
		st.payments[p.BookingID] = *p
		return nil
	})
}
