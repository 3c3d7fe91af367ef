package check_migration

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TenantService/internal/domain"
)

// Usecase проверка безопасности миграции конфигурации тенанта.
// Сравнивает две валидные конфигурации и перечисляет изменения,
// ломающие уже существующие бронирования.
type Usecase struct {
	parser ConfigParser
	logger Logger
}

func NewUsecase(parser ConfigParser, logger Logger) *Usecase {
	return &Usecase{parser: parser, logger: logger}
}

// Execute разбирает оба документа и сравнивает их.
// Ошибки валидации любого из документов блокируют сравнение:
// отчёт о миграции имеет смысл только для двух валидных конфигураций.
func (u *Usecase) Execute(req Request) (*Result, error) {
	// 1. Валидация входных данных
	var inputErrs []string
	if strings.TrimSpace(req.CurrentText) == "" {
		inputErrs = append(inputErrs, "current: document is required")
	}
	if strings.TrimSpace(req.ProposedText) == "" {
		inputErrs = append(inputErrs, "proposed: document is required")
	}
	if len(inputErrs) > 0 {
		return &Result{Errors: inputErrs}, ErrInvalidInput
	}

	// 2. Разбор обоих документов
	current := u.parser.Parse(req.CurrentText)
	proposed := u.parser.Parse(req.ProposedText)

	var errs, warnings []string
	errs = append(errs, prefixed("current", current.Errors)...)
	errs = append(errs, prefixed("proposed", proposed.Errors)...)
	warnings = append(warnings, prefixed("current", current.Warnings)...)
	warnings = append(warnings, prefixed("proposed", proposed.Warnings)...)
	if len(errs) > 0 {
		return &Result{Errors: errs, Warnings: warnings}, ErrValidationFailed
	}

	// 3. Чистое сравнение валидных конфигураций
	breaking := Compare(current.Config, proposed.Config)
	if len(breaking) > 0 {
		u.logger.Warn("check_migration: %s -> %s: %d breaking changes",
			current.Config.Business.ID, proposed.Config.Business.ID, len(breaking))
	}

	return &Result{
		Safe:            len(breaking) == 0,
		BreakingChanges: breaking,
		Warnings:        warnings,
	}, nil
}

// Compare сравнивает две валидные конфигурации и возвращает список
// ломающих изменений. Чистая функция без I/O.
// Услуги сопоставляются по id во всём документе: перенос услуги
// в другую категорию сам по себе миграцию не ломает.
func Compare(oldCfg, newCfg *domain.TenantConfig) []string {
	var breaking []string

	if oldCfg.Business.ID != newCfg.Business.ID {
		breaking = append(breaking, fmt.Sprintf(
			"business.id: changed from %q to %q, existing tenant routing breaks",
			oldCfg.Business.ID, newCfg.Business.ID))
	}

	if oldCfg.Business.Timezone != newCfg.Business.Timezone {
		breaking = append(breaking, fmt.Sprintf(
			"business.timezone: changed from %q to %q, existing bookings display in the old timezone",
			oldCfg.Business.Timezone, newCfg.Business.Timezone))
	}

	newServices := make(map[string]domain.Service)
	for _, svc := range newCfg.AllServices() {
		newServices[svc.ID] = svc
	}

	for _, oldSvc := range oldCfg.AllServices() {
		newSvc, ok := newServices[oldSvc.ID]
		if !ok {
			breaking = append(breaking, fmt.Sprintf(
				"services.%s: removed, existing bookings reference it", oldSvc.ID))
			continue
		}
		if oldSvc.DurationMinutes != newSvc.DurationMinutes {
			breaking = append(breaking, fmt.Sprintf(
				"services.%s: duration changed from %d to %d minutes, existing bookings were sized under the old duration",
				oldSvc.ID, oldSvc.DurationMinutes, newSvc.DurationMinutes))
		}
	}

	return breaking
}

func prefixed(prefix string, msgs []string) []string {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, prefix+": "+m)
	}
	return out
}
