package check_migration

// CheckMigrationRequest HTTP request model: действующий и предлагаемый
// документы конфигурации
type CheckMigrationRequest struct {
	Current  string `json:"current"`
	Proposed string `json:"proposed"`
}

// CheckMigrationResponse HTTP response model
type CheckMigrationResponse struct {
	Safe            bool     `json:"safe"`
	BreakingChanges []string `json:"breakingChanges"`
	Errors          []string `json:"errors,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}
