package get_tenant_config

import (
	"context"

	"github.com/m04kA/SMC-TenantService/internal/service/loader"
)

type TenantResolver interface {
	Resolve(ctx context.Context, tenantKey string) (*loader.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
