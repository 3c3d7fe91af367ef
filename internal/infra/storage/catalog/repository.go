package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TenantService/pkg/txmanager"
)

// DBExecutor интерфейс исполнителя запросов (обычно *sql.DB)
type DBExecutor = txmanager.Executor

var (
	categoryColumns = []string{"id", "business_id", "slug", "name", "description", "sort_order"}
	serviceColumns  = []string{
		"id", "business_id", "category_id", "slug", "name", "description",
		"duration_minutes", "price_minor_units", "capacity",
		"buffer_before_minutes", "buffer_after_minutes",
		"requires_deposit", "deposit_minor_units",
	}
)

// Repository репозиторий каталога услуг (категории + услуги)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateCategory создает запись категории
func (r *Repository) CreateCategory(ctx context.Context, c *domain.CategoryRecord) (*domain.CategoryRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("categories").
		Columns(categoryColumns...).
		Values(c.ID, c.BusinessID, c.Slug, c.Name, c.Description, c.SortOrder).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCategory - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateCategory - execute insert: %v", ErrExecQuery, err)
	}
	return c, nil
}

// CreateService создает запись услуги
func (r *Repository) CreateService(ctx context.Context, s *domain.ServiceRecord) (*domain.ServiceRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns(serviceColumns...).
		Values(s.ID, s.BusinessID, s.CategoryID, s.Slug, s.Name, s.Description,
			s.DurationMinutes, s.PriceMinorUnits, s.Capacity,
			s.BufferBeforeMinutes, s.BufferAfterMinutes,
			s.RequiresDeposit, s.DepositMinorUnits).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}
	return s, nil
}

// ListCategories возвращает категории бизнеса в порядке sort_order
func (r *Repository) ListCategories(ctx context.Context, businessID string) ([]*domain.CategoryRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(categoryColumns...).
		From("categories").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("sort_order ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	categories := make([]*domain.CategoryRecord, 0)
	for rows.Next() {
		var c domain.CategoryRecord
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.Slug, &c.Name, &c.Description, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("%w: ListCategories - scan row: %v", ErrScanRow, err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCategories - rows error: %v", ErrScanRow, err)
	}
	return categories, nil
}

// ListServices возвращает услуги бизнеса
func (r *Repository) ListServices(ctx context.Context, businessID string) ([]*domain.ServiceRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("slug ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.ServiceRecord, 0)
	for rows.Next() {
		var s domain.ServiceRecord
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.CategoryID, &s.Slug, &s.Name, &s.Description,
			&s.DurationMinutes, &s.PriceMinorUnits, &s.Capacity,
			&s.BufferBeforeMinutes, &s.BufferAfterMinutes,
			&s.RequiresDeposit, &s.DepositMinorUnits); err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}
	return services, nil
}
