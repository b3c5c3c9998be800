package notifier

import "errors"

var (
	// ErrPublish возвращается, когда брокер не принял сообщение
	ErrPublish = errors.New("notifier: failed to publish notification")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("notifier: internal error")
)
