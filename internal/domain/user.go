package domain

import "time"

// UserRole роль пользователя
type UserRole string

const (
	RoleOwner    UserRole = "owner"
	RoleCustomer UserRole = "customer"
	RoleStaff    UserRole = "staff"
	RoleAdmin    UserRole = "admin"
)

// User учётная запись. Пароль хранится только в виде bcrypt-хэша,
// токен верификации email - только в виде sha256-дайджеста.
type User struct {
	ID                    string // uuid
	Email                 string
	Name                  string
	Role                  UserRole
	PasswordHash          string
	EmailVerified         bool
	VerificationTokenHash *string
	VerificationExpiresAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsOwner возвращает true для владельца бизнеса
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// CanBeUpgradedToOwner возвращает true, если учётную запись можно
// повысить до владельца без конфликта ролей
func (u *User) CanBeUpgradedToOwner() bool {
	return u.Role == RoleCustomer
}
