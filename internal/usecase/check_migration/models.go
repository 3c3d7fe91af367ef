package check_migration

// Request пара документов конфигурации: действующий и предлагаемый
type Request struct {
	CurrentText  string
	ProposedText string
}

// Result отчёт проверки миграции. Safe=false означает наличие
// изменений, ломающих существующие бронирования; активацию блокирует
// вызывающая сторона, не сам чекер.
type Result struct {
	Safe            bool     `json:"safe"`
	BreakingChanges []string `json:"breakingChanges"`
	Errors          []string `json:"errors,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}
