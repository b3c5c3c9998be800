package models

import (
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// SelectPaymentMethodRequest запрос на выбор способа оплаты
type SelectPaymentMethodRequest struct {
	Method string `json:"method"`
}

// SubmitFragmentRequest последние пять цифр перевода
type SubmitFragmentRequest struct {
	LastFive string `json:"lastFive"`
}

// ListBookingsRequest фильтр списка бронирований
type ListBookingsRequest struct {
	Statuses   []string `json:"statuses,omitempty"`
	RoomTypeID *int64   `json:"roomTypeId,omitempty"`
	CheckInOn  *string  `json:"checkInOn,omitempty"`  // "2026-01-15"
	CheckOutOn *string  `json:"checkOutOn,omitempty"` // "2026-01-17"
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{RoomTypeID: r.RoomTypeID}

	for _, s := range r.Statuses {
		status, err := domain.ParseBookingStatus(s)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	if r.CheckInOn != nil {
		d, err := types.ParseDate(*r.CheckInOn)
		if err != nil {
			return filter, err
		}
		filter.CheckInOn = &d
	}
	if r.CheckOutOn != nil {
		d, err := types.ParseDate(*r.CheckOutOn)
		if err != nil {
			return filter, err
		}
		filter.CheckOutOn = &d
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	RoomTypeID      int64   `json:"roomTypeId"`
	GuestName       string  `json:"guestName"`
	GuestEmail      string  `json:"guestEmail"`
	GuestPhone      string  `json:"guestPhone"`
	CheckIn         string  `json:"checkIn"`  // "2026-01-15"
	CheckOut        string  `json:"checkOut"` // "2026-01-17"
	Nights          int     `json:"nights"`
	GuestCount      int     `json:"guestCount"`
	TotalPrice      string  `json:"totalPrice"`
	Status          string  `json:"status"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	Payment *PaymentResponse `json:"payment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaymentResponse платежные данные
type PaymentResponse struct {
	Method      string  `json:"method"`
	Amount      string  `json:"amount"`
	Status      string  `json:"status"`
	BankName    string  `json:"bankName,omitempty"`
	BankAccount string  `json:"bankAccount,omitempty"`
	LastFive    *string `json:"lastFive,omitempty"`
	SubmittedAt *string `json:"submittedAt,omitempty"`
	ConfirmedAt *string `json:"confirmedAt,omitempty"`
}

// StatusResponse текущий статус бронирования
type StatusResponse struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	Terminal  bool      `json:"terminal"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		RoomTypeID:         b.RoomTypeID,
		GuestName:          b.Guest.Name,
		GuestEmail:         b.Guest.Email,
		GuestPhone:         b.Guest.Phone,
		CheckIn:            b.CheckIn.String(),
		CheckOut:           b.CheckOut.String(),
		Nights:             b.Stay().Nights(),
		GuestCount:         b.GuestCount,
		TotalPrice:         b.TotalPrice.StringFixed(2),
		Status:             string(b.Status),
		SpecialRequests:    b.SpecialRequests,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	resp.CancelledAt = formatTime(b.CancelledAt)

	return resp
}

// FromDomainPayment конвертирует платежные данные в DTO
func FromDomainPayment(p *domain.PaymentDetail) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		Method:      string(p.Method),
		Amount:      p.Amount.StringFixed(2),
		Status:      string(p.Status),
		BankName:    p.BankName,
		BankAccount: p.BankAccount,
		LastFive:    p.LastFive,
		SubmittedAt: formatTime(p.SubmittedAt),
		ConfirmedAt: formatTime(p.ConfirmedAt),
	}
}

// FromDomainStatus конвертирует статус бронирования в DTO
func FromDomainStatus(b *domain.Booking) *StatusResponse {
	return &StatusResponse{
		ID:        b.ID,
		Status:    string(b.Status),
		Terminal:  b.IsTerminal(),
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
