package ownership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TenantService/pkg/txmanager"
)

// DBExecutor интерфейс исполнителя запросов (обычно *sql.DB)
type DBExecutor = txmanager.Executor

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ownership.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ownership.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ownership.repository: failed to scan row")
)

// Repository репозиторий связей владельцев с бизнесами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория владения
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает связь владения
func (r *Repository) Create(ctx context.Context, link *domain.BusinessOwner) (*domain.BusinessOwner, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_owners").
		Columns("business_id", "user_id", "is_primary").
		Values(link.BusinessID, link.UserID, link.IsPrimary).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	link.CreatedAt = createdAt.Time
	return link, nil
}

// CountByUser возвращает количество бизнесов пользователя.
// Ноль означает, что следующий созданный бизнес станет primary.
func (r *Repository) CountByUser(ctx context.Context, userID string) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("business_owners").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByUser - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByUser - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}
