package validation

import "time"

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Validator двухпроходный валидатор конфигурации тенанта.
// Чистый и безопасный для конкурентного использования: не имеет
// разделяемого изменяемого состояния.
type Validator struct {
	timeProvider TimeProvider
}

// NewValidator создает валидатор с системными часами
func NewValidator() *Validator {
	return &Validator{timeProvider: &RealTimeProvider{}}
}

// NewValidatorWithTime создает валидатор с внешними часами
func NewValidatorWithTime(tp TimeProvider) *Validator {
	return &Validator{timeProvider: tp}
}

// Validate выполняет полную валидацию входной конфигурации.
//
// Проход 1 (структурный): тип/формат/диапазон каждого поля. Любая ошибка
// фатальна, семантический проход не выполняется.
// Проход 2 (семантический): кросс-полевые инварианты над канонической
// формой. Нормализация (легаси-расписание, округление к грейну) ошибок
// не порождает - только предупреждения.
func (v *Validator) Validate(input *ConfigInput) Result {
	if input == nil {
		return Result{Valid: false, Errors: []string{"config: document is empty"}}
	}

	// 1. Структурный проход
	if errs := validateStructural(input); len(errs) > 0 {
		return Result{Valid: false, Errors: errs}
	}

	// 2. Нормализация в каноническую форму (lossless для валидного входа)
	cfg, normWarnings := normalize(input)

	// 3. Семантический проход
	if errs := v.validateSemantic(cfg); len(errs) > 0 {
		return Result{Valid: false, Errors: errs}
	}

	// 4. Предупреждения (никогда не блокируют)
	warnings := append(normWarnings, collectWarnings(cfg)...)

	return Result{Valid: true, Config: cfg, Warnings: warnings}
}
