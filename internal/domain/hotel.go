package domain

import (
	"time"

	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// HotelSettings параметры отеля, общие для всех компонентов
type HotelSettings struct {
	Location    *time.Location
	Currency    string
	BankName    string
	BankAccount string
}

// Today текущая дата в часовом поясе отеля
func (h HotelSettings) Today(now time.Time) types.Date {
	return types.DateOf(now.In(h.location()))
}

func (h HotelSettings) location() *time.Location {
	if h.Location == nil {
		return time.UTC
	}
	return h.Location
}
