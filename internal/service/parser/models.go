package parser

import "github.com/m04kA/SMC-TenantService/internal/domain"

// Result результат разбора документа конфигурации
type Result struct {
	Success  bool
	Config   *domain.TenantConfig
	Errors   []string
	Warnings []string
}
