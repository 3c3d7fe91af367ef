package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-TenantService/internal/service/validation"
)

// Parser разбирает YAML-документ конфигурации тенанта и прогоняет его
// через валидатор. Ошибки синтаксиса и ошибки схемы - разные категории:
// первые начинаются с "source:", чтобы вызывающий мог отличить
// "почини синтаксис" от "почини бизнес-правила".
type Parser struct {
	validator *validation.Validator
}

// NewParser создает парсер поверх переданного валидатора
func NewParser(validator *validation.Validator) *Parser {
	return &Parser{validator: validator}
}

// Parse разбирает документ из строки.
// Ошибка десериализации возвращается единственной ошибкой источника;
// до валидатора дело в этом случае не доходит.
func (p *Parser) Parse(sourceText string) Result {
	if len(sourceText) == 0 {
		return Result{Success: false, Errors: []string{"source: document is empty"}}
	}

	var input validation.ConfigInput
	if err := yaml.Unmarshal([]byte(sourceText), &input); err != nil {
		return Result{Success: false, Errors: []string{
			fmt.Sprintf("source: malformed document: %v", err),
		}}
	}

	res := p.validator.Validate(&input)
	return Result{
		Success:  res.Valid,
		Config:   res.Config,
		Errors:   res.Errors,
		Warnings: res.Warnings,
	}
}

// ParseFile разбирает документ из файла. Ошибки ввода-вывода (нет файла,
// нет прав) оборачиваются в ошибку источника, а не пробрасываются наверх.
func (p *Parser) ParseFile(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Success: false, Errors: []string{
			fmt.Sprintf("source: cannot read %s: %v", path, err),
		}}
	}
	return p.Parse(string(data))
}
