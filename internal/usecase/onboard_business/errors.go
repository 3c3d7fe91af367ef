package onboard_business

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("onboard_business: invalid input data")

	// ErrValidationFailed возвращается, когда документ конфигурации
	// не прошёл разбор или валидацию
	ErrValidationFailed = errors.New("onboard_business: config validation failed")

	// ErrSubdomainTaken возвращается, когда поддомен уже занят
	ErrSubdomainTaken = errors.New("onboard_business: subdomain already taken")

	// ErrBusinessSuspended возвращается, когда поддомен принадлежит
	// приостановленному бизнесу
	ErrBusinessSuspended = errors.New("onboard_business: subdomain belongs to a suspended business")

	// ErrRoleConflict возвращается, когда email зарегистрирован под ролью,
	// несовместимой с владением бизнесом
	ErrRoleConflict = errors.New("onboard_business: email registered under an incompatible role")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("onboard_business: internal error")
)
