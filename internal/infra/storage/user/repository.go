package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TenantService/pkg/txmanager"
)

const uniqueViolation = pq.ErrorCode("23505")

// DBExecutor интерфейс исполнителя запросов (обычно *sql.DB)
type DBExecutor = txmanager.Executor

var userColumns = []string{
	"id",
	"email",
	"name",
	"role",
	"password_hash",
	"email_verified",
	"verification_token_hash",
	"verification_expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с пользователями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пользователя
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("id", "email", "name", "role", "password_hash",
			"email_verified", "verification_token_hash", "verification_expires_at").
		Values(u.ID, strings.ToLower(u.Email), u.Name, u.Role, u.PasswordHash,
			u.EmailVerified, u.VerificationTokenHash, u.VerificationExpiresAt).
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
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return u, nil
}

// GetByEmail получает пользователя по email (без учёта регистра)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": strings.ToLower(email)}, "GetByEmail")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var u domain.User
	var createdAt, updatedAt sql.NullTime
	var verificationExpiresAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.PasswordHash,
		&u.EmailVerified,
		&u.VerificationTokenHash,
		&verificationExpiresAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, method, err)
	}

	if verificationExpiresAt.Valid {
		u.VerificationExpiresAt = &verificationExpiresAt.Time
	}
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return &u, nil
}

// UpdateRole меняет роль пользователя (повышение customer -> owner
// при онбординге). Учётные данные не трогает.
func (r *Repository) UpdateRole(ctx context.Context, id string, role domain.UserRole) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("role", role).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateRole - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRole - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRole - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateVerification перевыпускает токен верификации email: заменяет
// дайджест и срок действия. Старый токен после этого недействителен.
func (r *Repository) UpdateVerification(ctx context.Context, id string, tokenHash string, expiresAt time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("verification_token_hash", tokenHash).
		Set("verification_expires_at", expiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateVerification - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateVerification - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateVerification - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
