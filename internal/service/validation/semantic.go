package validation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TenantService/internal/domain"
)

// validateSemantic проверяет кросс-полевые инварианты над канонической
// формой. Выполняется только после успешного структурного прохода.
func (v *Validator) validateSemantic(cfg *domain.TenantConfig) []string {
	var errs []string

	errs = append(errs, checkIDUniqueness(cfg)...)
	errs = append(errs, checkWeekCoverage(cfg)...)
	errs = append(errs, checkDaySlots(cfg)...)
	errs = append(errs, v.checkExceptionDates(cfg)...)
	errs = append(errs, checkCategoryContents(cfg)...)
	errs = append(errs, checkDeposits(cfg)...)
	errs = append(errs, checkRefundPolicy(cfg)...)

	return errs
}

// checkIDUniqueness: id категорий и услуг уникальны в рамках всего документа
func checkIDUniqueness(cfg *domain.TenantConfig) []string {
	var errs []string

	seenCategories := make(map[string]bool)
	seenServices := make(map[string]bool)

	for _, cat := range cfg.Categories {
		if seenCategories[cat.ID] {
			errs = append(errs, fmt.Sprintf("categories[%s].id: duplicate category id", cat.ID))
		}
		seenCategories[cat.ID] = true

		for _, svc := range cat.Services {
			if seenServices[svc.ID] {
				errs = append(errs, fmt.Sprintf("services[%s].id: duplicate service id", svc.ID))
			}
			seenServices[svc.ID] = true
		}
	}
	return errs
}

// checkWeekCoverage: ровно 7 записей, по одной на каждый день недели
func checkWeekCoverage(cfg *domain.TenantConfig) []string {
	var errs []string

	if len(cfg.Availability) != 7 {
		errs = append(errs, fmt.Sprintf("availability: expected exactly 7 entries (one per day of week), got %d",
			len(cfg.Availability)))
	}

	counts := make(map[domain.Weekday]int)
	for _, day := range cfg.Availability {
		counts[day.Day]++
	}
	for _, day := range domain.Weekdays {
		switch {
		case counts[day] == 0:
			errs = append(errs, fmt.Sprintf("availability: missing entry for %s", day))
		case counts[day] > 1:
			errs = append(errs, fmt.Sprintf("availability: duplicate entry for %s", day))
		}
	}
	return errs
}

// checkDaySlots: у включённого дня слоты непусты, строго хронологичны,
// не пересекаются и суммарно не превышают сутки
func checkDaySlots(cfg *domain.TenantConfig) []string {
	var errs []string

	for _, day := range cfg.Availability {
		path := fmt.Sprintf("availability[%s]", day.Day)

		if day.Enabled && len(day.Slots) == 0 {
			errs = append(errs, path+": enabled day must have at least one slot")
			continue
		}
		errs = append(errs, checkSlotSequence(path, day.Slots)...)
	}

	for _, ex := range cfg.AvailabilityExceptions {
		path := fmt.Sprintf("availabilityExceptions[%s]", ex.Date)
		if !ex.Closed && len(ex.Slots) == 0 {
			errs = append(errs, path+": open exception must have at least one slot")
			continue
		}
		errs = append(errs, checkSlotSequence(path, ex.Slots)...)
	}
	return errs
}

func checkSlotSequence(path string, slots []domain.TimeSlot) []string {
	var errs []string
	total := 0

	for i, slot := range slots {
		slotPath := fmt.Sprintf("%s.slots[%d]", path, i)

		if !slot.Start.IsBefore(slot.End) {
			errs = append(errs, fmt.Sprintf("%s: start %s must be before end %s", slotPath, slot.Start, slot.End))
			continue
		}
		total += slot.DurationMinutes()

		if i == 0 {
			continue
		}
		prev := slots[i-1]
		// Строгая хронология: следующий слот начинается не раньше конца предыдущего
		if slot.Start.IsBefore(prev.End) {
			errs = append(errs, fmt.Sprintf("%s: overlaps previous slot ending at %s", slotPath, prev.End))
		}
	}

	if total > domain.MinutesPerDay {
		errs = append(errs, fmt.Sprintf("%s: total open time %d minutes exceeds 24 hours", path, total))
	}
	return errs
}

// checkExceptionDates: даты исключений не могут быть в прошлом
// относительно момента валидации
func (v *Validator) checkExceptionDates(cfg *domain.TenantConfig) []string {
	var errs []string

	loc := time.UTC
	if l, err := time.LoadLocation(cfg.Business.Timezone); err == nil {
		loc = l
	}
	now := v.timeProvider.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	for _, ex := range cfg.AvailabilityExceptions {
		date, err := time.ParseInLocation(domain.DateFormat, ex.Date, loc)
		if err != nil {
			// Формат уже проверен структурным проходом
			continue
		}
		if date.Before(today) {
			errs = append(errs, fmt.Sprintf("availabilityExceptions[%s]: date is in the past", ex.Date))
		}
	}
	return errs
}

// checkCategoryContents: каждая категория содержит хотя бы одну услугу
func checkCategoryContents(cfg *domain.TenantConfig) []string {
	var errs []string
	for _, cat := range cfg.Categories {
		if len(cat.Services) == 0 {
			errs = append(errs, fmt.Sprintf("categories[%s]: category must contain at least one service", cat.ID))
		}
	}
	return errs
}

// checkDeposits: депозит требует суммы, и сумма не превышает цену услуги
func checkDeposits(cfg *domain.TenantConfig) []string {
	var errs []string
	for _, svc := range cfg.AllServices() {
		if !svc.RequiresDeposit {
			continue
		}
		path := fmt.Sprintf("services[%s]", svc.ID)
		if svc.DepositMinorUnits == nil {
			errs = append(errs, path+".depositAmount: required when requiresDeposit is true")
			continue
		}
		if *svc.DepositMinorUnits > svc.PriceMinorUnits {
			errs = append(errs, fmt.Sprintf("%s.depositAmount: deposit %d exceeds service price %d",
				path, *svc.DepositMinorUnits, svc.PriceMinorUnits))
		}
	}
	return errs
}

// checkRefundPolicy: частичный возврат требует процента
func checkRefundPolicy(cfg *domain.TenantConfig) []string {
	if cfg.CancellationPolicy.RefundPolicy == domain.RefundPartial && cfg.CancellationPolicy.RefundPercentage == nil {
		return []string{"cancellationPolicy.refundPercentage: required when refundPolicy is partial"}
	}
	return nil
}
