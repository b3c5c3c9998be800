package import_holds

import "errors"

var (
	// ErrUnknownFeed возвращается, когда запрошен не настроенный источник
	ErrUnknownFeed = errors.New("import_holds: unknown feed source")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("import_holds: internal error")
)
