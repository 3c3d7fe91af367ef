package onboard_business

import (
	"context"

	onboardBusiness "github.com/m04kA/SMC-TenantService/internal/usecase/onboard_business"
)

type OnboardBusinessUseCase interface {
	Execute(ctx context.Context, req onboardBusiness.Request) (*onboardBusiness.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
