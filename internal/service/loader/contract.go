package loader

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/internal/service/parser"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetBySubdomain(ctx context.Context, subdomain string) (*domain.Business, error)
	GetByID(ctx context.Context, id string) (*domain.Business, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	ListCategories(ctx context.Context, businessID string) ([]*domain.CategoryRecord, error)
	ListServices(ctx context.Context, businessID string) ([]*domain.ServiceRecord, error)
}

// AvailabilityRepository интерфейс репозитория календаря
type AvailabilityRepository interface {
	ListByBusiness(ctx context.Context, businessID string) ([]*domain.AvailabilityRecord, error)
}

// ConfigParser интерфейс парсера документов конфигурации
type ConfigParser interface {
	ParseFile(path string) parser.Result
}

// CacheMetrics счётчик обращений к кэшу (hit/miss)
type CacheMetrics interface {
	ObserveCacheLookup(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
