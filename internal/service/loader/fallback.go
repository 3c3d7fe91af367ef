package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/internal/service/validation"
	"github.com/m04kA/SMC-TenantService/pkg/ptr"
)

// synthesizeFallback строит конфигурацию из нормализованных записей
// хранилища, когда авторитетного источника нет или он не разобрался.
// Результат прогоняется через тот же валидатор, что и обычный документ:
// fallback обязан удовлетворять всем инвариантам.
func (s *Service) synthesizeFallback(ctx context.Context, biz *domain.Business) (*Result, error) {
	categories, err := s.catalogRepo.ListCategories(ctx, biz.ID)
	if err != nil {
		s.logger.Error("synthesizeFallback: failed to list categories for %s: %v", biz.Subdomain, err)
		return nil, fmt.Errorf("%w: list categories: %v", ErrInternal, err)
	}
	services, err := s.catalogRepo.ListServices(ctx, biz.ID)
	if err != nil {
		s.logger.Error("synthesizeFallback: failed to list services for %s: %v", biz.Subdomain, err)
		return nil, fmt.Errorf("%w: list services: %v", ErrInternal, err)
	}
	records, err := s.availabilityRepo.ListByBusiness(ctx, biz.ID)
	if err != nil {
		s.logger.Error("synthesizeFallback: failed to list availability for %s: %v", biz.Subdomain, err)
		return nil, fmt.Errorf("%w: list availability: %v", ErrInternal, err)
	}

	if len(categories) == 0 || len(services) == 0 {
		s.logger.Warn("synthesizeFallback: no catalog records for %s, config unavailable", biz.Subdomain)
		return nil, ErrConfigUnavailable
	}

	input := buildFallbackInput(biz, categories, services, records, s.timeProvider.Now())

	res := s.validator.Validate(input)
	if !res.Valid {
		// Синтез строится так, чтобы этого не случалось; если случилось -
		// это повреждённые записи, а не ошибка пользователя
		s.logger.Error("synthesizeFallback: synthesized config for %s failed validation: %v",
			biz.Subdomain, res.Errors)
		return nil, fmt.Errorf("%w: synthesized config is invalid", ErrInternal)
	}

	warnings := append(res.Warnings,
		fmt.Sprintf("config: synthesized fallback from stored records for %s, authoritative source missing or unreadable", biz.Subdomain))

	s.logger.Info("synthesizeFallback: built fallback config for %s (%d categories, %d services)",
		biz.Subdomain, len(categories), len(services))
	return &Result{Config: res.Config, Warnings: warnings, Source: SourceFallback}, nil
}

func buildFallbackInput(
	biz *domain.Business,
	categories []*domain.CategoryRecord,
	services []*domain.ServiceRecord,
	records []*domain.AvailabilityRecord,
	now time.Time,
) *validation.ConfigInput {
	input := &validation.ConfigInput{
		Version:          ptr.Ptr(domain.DefaultConfigVersion),
		TimeSlotDuration: ptr.Ptr(domain.DefaultTimeSlotDuration),
	}

	input.Business = &validation.BusinessInput{
		ID:       biz.Subdomain,
		Name:     biz.Name,
		Timezone: orDefault(biz.Timezone, domain.DefaultTimezone),
		Locale:   orDefault(biz.Locale, domain.DefaultLocale),
		Currency: orDefault(biz.Currency, domain.DefaultCurrency),
	}

	// Контактов в нормализованных таблицах нет; подставляем плейсхолдеры,
	// удовлетворяющие схеме
	input.Contact = &validation.ContactInput{
		Address: "address not provided",
		Email:   fmt.Sprintf("info@%s.invalid", biz.Subdomain),
		Phone:   "+10000000000",
	}

	input.Availability = buildFallbackAvailability(records)
	input.AvailabilityExceptions = buildFallbackExceptions(records, now)
	input.Categories = buildFallbackCatalog(categories, services)

	return input
}

// buildFallbackAvailability всегда выдаёт все 7 дней: день без записи
// в хранилище считается выключенным
func buildFallbackAvailability(records []*domain.AvailabilityRecord) []validation.DayInput {
	byDay := make(map[domain.Weekday]*domain.AvailabilityRecord)
	for _, rec := range records {
		if rec.Day != nil {
			byDay[*rec.Day] = rec
		}
	}

	days := make([]validation.DayInput, 0, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		entry := validation.DayInput{Day: string(day), Enabled: ptr.Ptr(false)}
		if rec, ok := byDay[day]; ok {
			entry.Enabled = ptr.Ptr(rec.Enabled)
			for _, slot := range rec.Slots {
				entry.Slots = append(entry.Slots, validation.SlotInput{
					Start: string(slot.Start),
					End:   string(slot.End),
				})
			}
		}
		days = append(days, entry)
	}
	return days
}

// buildFallbackExceptions отбрасывает прошедшие даты: для валидатора они
// были бы ошибкой, а для обслуживания они в любом случае мертвы
func buildFallbackExceptions(records []*domain.AvailabilityRecord, now time.Time) []validation.ExceptionInput {
	today := now.Format(domain.DateFormat)

	var exceptions []validation.ExceptionInput
	for _, rec := range records {
		if rec.ExceptionDate == nil || *rec.ExceptionDate < today {
			continue
		}
		ex := validation.ExceptionInput{
			Date:   *rec.ExceptionDate,
			Closed: !rec.Enabled,
		}
		for _, slot := range rec.Slots {
			ex.Slots = append(ex.Slots, validation.SlotInput{
				Start: string(slot.Start),
				End:   string(slot.End),
			})
		}
		exceptions = append(exceptions, ex)
	}
	return exceptions
}

func buildFallbackCatalog(
	categories []*domain.CategoryRecord,
	services []*domain.ServiceRecord,
) []validation.CategoryInput {
	byCategory := make(map[string][]*domain.ServiceRecord)
	for _, svc := range services {
		byCategory[svc.CategoryID] = append(byCategory[svc.CategoryID], svc)
	}

	var result []validation.CategoryInput
	for _, cat := range categories {
		svcs := byCategory[cat.ID]
		if len(svcs) == 0 {
			// Пустая категория нарушила бы инвариант
			continue
		}
		entry := validation.CategoryInput{
			ID:          cat.Slug,
			Name:        cat.Name,
			Description: cat.Description,
			SortOrder:   ptr.Ptr(cat.SortOrder),
		}
		for _, svc := range svcs {
			entry.Services = append(entry.Services, validation.ServiceInput{
				ID:              svc.Slug,
				Name:            svc.Name,
				Description:     svc.Description,
				Duration:        ptr.Ptr(svc.DurationMinutes),
				Price:           ptr.Ptr(svc.PriceMinorUnits),
				Capacity:        ptr.Ptr(svc.Capacity),
				BufferBefore:    ptr.Ptr(svc.BufferBeforeMinutes),
				BufferAfter:     ptr.Ptr(svc.BufferAfterMinutes),
				RequiresDeposit: svc.RequiresDeposit,
				DepositAmount:   svc.DepositMinorUnits,
			})
		}
		result = append(result, entry)
	}
	return result
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
