package loader

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден или не активен
	ErrTenantNotFound = errors.New("loader: tenant not found")

	// ErrConfigUnavailable возвращается, когда нет ни авторитетного
	// конфига, ни записей для синтеза fallback-конфига
	ErrConfigUnavailable = errors.New("loader: tenant config unavailable")

	// ErrInternal возвращается при внутренних ошибках загрузчика
	ErrInternal = errors.New("loader: internal error")
)
