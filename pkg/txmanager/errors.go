package txmanager

import "errors"

var (
	// ErrBeginTx ошибка открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationRetriesExceeded исчерпаны повторы сериализуемой транзакции
	ErrSerializationRetriesExceeded = errors.New("txmanager: serialization retries exceeded")
)
