package get_availability

import "errors"

var (
	// ErrRangeTooLong возвращается, когда запрошен слишком длинный период
	ErrRangeTooLong = errors.New("get_availability: requested range is too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
