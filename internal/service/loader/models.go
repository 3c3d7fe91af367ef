package loader

import "github.com/m04kA/SMC-TenantService/internal/domain"

// Source источник, из которого получен конфиг
type Source string

const (
	SourceCache         Source = "cache"
	SourceAuthoritative Source = "authoritative"
	SourceFallback      Source = "fallback"
)

// Result результат резолва тенанта
type Result struct {
	Config   *domain.TenantConfig
	Warnings []string
	Source   Source
}

// cacheEntry значение в кэше: конфиг вместе с предупреждениями валидации.
// Запись хранится под двумя ключами-псевдонимами (поддомен и id бизнеса),
// оба запоминаются здесь, чтобы инвалидация по любому из них сняла оба.
// Неизменяемо после вставки.
type cacheEntry struct {
	config     *domain.TenantConfig
	warnings   []string
	source     Source
	subdomain  string
	businessID string
}
