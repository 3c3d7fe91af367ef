package validate_config

// ValidateConfigRequest HTTP request model
type ValidateConfigRequest struct {
	Source string `json:"source"` // YAML-документ конфигурации
}

// ValidateConfigResponse HTTP response model.
// Сухой прогон валидации: ничего не сохраняется.
type ValidateConfigResponse struct {
	Success  bool     `json:"success"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
