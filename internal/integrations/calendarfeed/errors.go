package calendarfeed

import "errors"

var (
	// ErrTooLarge возвращается, когда ответ фида превышает лимит
	ErrTooLarge = errors.New("calendarfeed: feed body too large")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarfeed client: internal error")
)
