package create_booking

import "errors"

var (
	// ErrRoomTypeInactive возвращается, когда категория номера снята с продажи
	ErrRoomTypeInactive = errors.New("create_booking: room type is not available for sale")

	// ErrTooManyGuests возвращается, когда гостей больше, чем вмещает номер
	ErrTooManyGuests = errors.New("create_booking: guest count exceeds room capacity")

	// ErrCheckInInPast возвращается, когда дата заезда раньше сегодняшней даты отеля
	ErrCheckInInPast = errors.New("create_booking: check-in date is in the past")

	// ErrStayTooLong возвращается, когда проживание длиннее допустимого
	ErrStayTooLong = errors.New("create_booking: stay is too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
