package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomTypeID      int64   `json:"roomTypeId"`
	CheckIn         string  `json:"checkIn"`  // "2026-01-15"
	CheckOut        string  `json:"checkOut"` // "2026-01-17"
	GuestName       string  `json:"guestName"`
	GuestEmail      string  `json:"guestEmail"`
	GuestPhone      string  `json:"guestPhone,omitempty"`
	GuestCount      int     `json:"guestCount"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// NightResponse цена одной ночи
type NightResponse struct {
	Date        string `json:"date"`
	Price       string `json:"price"`
	Kind        string `json:"kind"`
	HolidayName string `json:"holidayName,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64           `json:"id"`
	RoomTypeID      int64           `json:"roomTypeId"`
	GuestName       string          `json:"guestName"`
	GuestEmail      string          `json:"guestEmail"`
	GuestPhone      string          `json:"guestPhone,omitempty"`
	CheckIn         string          `json:"checkIn"`
	CheckOut        string          `json:"checkOut"`
	GuestCount      int             `json:"guestCount"`
	TotalPrice      string          `json:"totalPrice"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	SpecialRequests *string         `json:"specialRequests,omitempty"`
	Nights          []NightResponse `json:"nights"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		RoomTypeID:      r.RoomTypeID,
		CheckIn:         r.CheckIn,
		CheckOut:        r.CheckOut,
		GuestName:       r.GuestName,
		GuestEmail:      r.GuestEmail,
		GuestPhone:      r.GuestPhone,
		GuestCount:      r.GuestCount,
		SpecialRequests: r.SpecialRequests,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	nights := make([]NightResponse, 0, len(resp.Nights))
	for _, n := range resp.Nights {
		nights = append(nights, NightResponse{
			Date:        n.Date,
			Price:       n.Price.StringFixed(2),
			Kind:        n.Kind,
			HolidayName: n.HolidayName,
		})
	}

	return &BookingResponse{
		ID:              resp.ID,
		RoomTypeID:      resp.RoomTypeID,
		GuestName:       resp.GuestName,
		GuestEmail:      resp.GuestEmail,
		GuestPhone:      resp.GuestPhone,
		CheckIn:         resp.CheckIn,
		CheckOut:        resp.CheckOut,
		GuestCount:      resp.GuestCount,
		TotalPrice:      resp.TotalPrice.StringFixed(2),
		Currency:        resp.Currency,
		Status:          resp.Status,
		SpecialRequests: resp.SpecialRequests,
		Nights:          nights,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
