package onboard_business

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/internal/service/parser"
)

// ConfigParser интерфейс парсера документов конфигурации
type ConfigParser interface {
	Parse(sourceText string) parser.Result
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetBySubdomain(ctx context.Context, subdomain string) (*domain.Business, error)
	Create(ctx context.Context, b *domain.Business) (*domain.Business, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.UserRole) error
	UpdateVerification(ctx context.Context, id string, tokenHash string, expiresAt time.Time) error
}

// OwnershipRepository интерфейс репозитория связей владения
type OwnershipRepository interface {
	Create(ctx context.Context, link *domain.BusinessOwner) (*domain.BusinessOwner, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	CreateCategory(ctx context.Context, c *domain.CategoryRecord) (*domain.CategoryRecord, error)
	CreateService(ctx context.Context, s *domain.ServiceRecord) (*domain.ServiceRecord, error)
}

// AvailabilityRepository интерфейс репозитория календаря
type AvailabilityRepository interface {
	Create(ctx context.Context, rec *domain.AvailabilityRecord) (*domain.AvailabilityRecord, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
