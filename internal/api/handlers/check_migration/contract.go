package check_migration

import (
	checkMigration "github.com/m04kA/SMC-TenantService/internal/usecase/check_migration"
)

type CheckMigrationUseCase interface {
	Execute(req checkMigration.Request) (*checkMigration.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
