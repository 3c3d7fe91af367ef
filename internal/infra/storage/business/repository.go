package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TenantService/pkg/txmanager"
)

const uniqueViolation = pq.ErrorCode("23505")

var businessColumns = []string{
	"id",
	"subdomain",
	"name",
	"timezone",
	"locale",
	"currency",
	"status",
	"config_source",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями бизнесов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись бизнеса.
// Уникальность поддомена гарантирует constraint в БД: конкурентный
// онбординг одного поддомена получает ErrSubdomainTaken, а не гонку.
func (r *Repository) Create(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("businesses").
		Columns("id", "subdomain", "name", "timezone", "locale", "currency", "status", "config_source").
		Values(b.ID, b.Subdomain, b.Name, b.Timezone, b.Locale, b.Currency, b.Status, b.ConfigSource).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrSubdomainTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// GetBySubdomain получает бизнес по поддомену
func (r *Repository) GetBySubdomain(ctx context.Context, subdomain string) (*domain.Business, error) {
	return r.getOne(ctx, squirrel.Eq{"subdomain": subdomain}, "GetBySubdomain")
}

// GetByID получает бизнес по id
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Business, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessColumns...).
		From("businesses").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var b domain.Business
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.Subdomain,
		&b.Name,
		&b.Timezone,
		&b.Locale,
		&b.Currency,
		&b.Status,
		&b.ConfigSource,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan business: %v", ErrScanRow, method, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}
