package onboard_business

import (
	onboardBusiness "github.com/m04kA/SMC-TenantService/internal/usecase/onboard_business"
)

// OnboardBusinessRequest HTTP request model
type OnboardBusinessRequest struct {
	Source           string  `json:"source"` // YAML-документ конфигурации
	OwnerEmail       string  `json:"ownerEmail"`
	OwnerName        *string `json:"ownerName,omitempty"`
	ConfigSourcePath *string `json:"configSourcePath,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *OnboardBusinessRequest) ToUseCaseRequest() onboardBusiness.Request {
	return onboardBusiness.Request{
		SourceText:       r.Source,
		OwnerEmail:       r.OwnerEmail,
		OwnerName:        r.OwnerName,
		ConfigSourcePath: r.ConfigSourcePath,
	}
}
