package check_migration

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_migration: invalid input data")

	// ErrValidationFailed возвращается, когда один из документов
	// не прошёл разбор или валидацию
	ErrValidationFailed = errors.New("check_migration: config validation failed")
)
