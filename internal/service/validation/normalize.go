package validation

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/pkg/types"
)

// normalize переводит структурно корректный вход в каноническую форму:
// легаси open/close становится массивом slots, длительности и буферы
// округляются к грейну, опциональные секции получают дефолты.
// Преобразование детерминированно и lossless для валидного входа;
// округление никогда не ошибка - только предупреждение.
func normalize(input *ConfigInput) (*domain.TenantConfig, []string) {
	var warnings []string

	cfg := &domain.TenantConfig{
		Version:  *input.Version,
		Metadata: input.Metadata,
	}

	cfg.Business = domain.BusinessInfo{
		ID:          input.Business.ID,
		Name:        input.Business.Name,
		Description: input.Business.Description,
		Timezone:    input.Business.Timezone,
		Locale:      input.Business.Locale,
		Currency:    input.Business.Currency,
	}
	if cfg.Business.Locale == "" {
		cfg.Business.Locale = domain.DefaultLocale
	}

	cfg.Contact = domain.ContactInfo{
		Address:   input.Contact.Address,
		Email:     input.Contact.Email,
		Phone:     input.Contact.Phone,
		Website:   input.Contact.Website,
		Social:    input.Contact.Social,
		Latitude:  input.Contact.Latitude,
		Longitude: input.Contact.Longitude,
	}

	cfg.Branding = normalizeBranding(input.Branding)

	cfg.TimeSlotDuration = roundDurationWithWarning(*input.TimeSlotDuration, "timeSlotDuration", &warnings)

	cfg.Availability = normalizeAvailability(input.Availability)
	cfg.AvailabilityExceptions = normalizeExceptions(input.AvailabilityExceptions)

	cfg.Categories = normalizeCategories(input.Categories, &warnings)

	if input.BookingRequirements != nil {
		cfg.BookingRequirements = domain.BookingRequirements{
			RequireName:              input.BookingRequirements.RequireName,
			RequirePhone:             input.BookingRequirements.RequirePhone,
			RequireEmailVerification: input.BookingRequirements.RequireEmailVerification,
			AllowGuestBooking:        input.BookingRequirements.AllowGuestBooking,
		}
	}

	cfg.BookingLimits = normalizeBookingLimits(input.BookingLimits)
	cfg.CancellationPolicy = normalizeCancellationPolicy(input.CancellationPolicy)

	if input.Notifications != nil {
		cfg.Notifications = domain.NotificationPreferences{
			EmailEnabled:        input.Notifications.EmailEnabled,
			SMSEnabled:          input.Notifications.SMSEnabled,
			ReminderHoursBefore: input.Notifications.ReminderHoursBefore,
		}
	} else {
		cfg.Notifications = domain.NotificationPreferences{EmailEnabled: true}
	}

	if input.Features != nil {
		cfg.Features = domain.Features{
			OnlinePayments:  input.Features.OnlinePayments,
			CustomerReviews: input.Features.CustomerReviews,
			Waitlist:        input.Features.Waitlist,
		}
	}

	return cfg, warnings
}

func normalizeBranding(b *BrandingInput) domain.Branding {
	branding := domain.Branding{
		PrimaryColor:   "#1A1A2E",
		SecondaryColor: "#F5F5F5",
	}
	if b == nil {
		return branding
	}
	if b.PrimaryColor != "" {
		branding.PrimaryColor = b.PrimaryColor
	}
	if b.SecondaryColor != "" {
		branding.SecondaryColor = b.SecondaryColor
	}
	branding.LogoURL = b.LogoURL
	branding.CoverImageURL = b.CoverImageURL
	return branding
}

// normalizeAvailability переводит каждую запись в каноническую slots-форму
// и сортирует дни в порядке понедельник..воскресенье. Дубликаты и пропуски
// дней сознательно сохраняются - их отлавливает семантический проход.
func normalizeAvailability(days []DayInput) []domain.DailyAvailability {
	result := make([]domain.DailyAvailability, 0, len(days))

	for _, day := range days {
		entry := domain.DailyAvailability{Day: domain.Weekday(day.Day)}

		if day.Open != nil && day.Close != nil {
			// Легаси-формат: одна смена на весь день
			entry.Slots = []domain.TimeSlot{{
				Start: types.TimeString(*day.Open),
				End:   types.TimeString(*day.Close),
			}}
		} else {
			for _, slot := range day.Slots {
				entry.Slots = append(entry.Slots, domain.TimeSlot{
					Start: types.TimeString(slot.Start),
					End:   types.TimeString(slot.End),
				})
			}
		}

		if day.Enabled != nil {
			entry.Enabled = *day.Enabled
		} else {
			// Отсутствие enabled трактуем по наличию расписания
			entry.Enabled = len(entry.Slots) > 0
		}

		result = append(result, entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return weekdayIndex(result[i].Day) < weekdayIndex(result[j].Day)
	})
	return result
}

func weekdayIndex(day domain.Weekday) int {
	for i, d := range domain.Weekdays {
		if d == day {
			return i
		}
	}
	return len(domain.Weekdays)
}

func normalizeExceptions(exceptions []ExceptionInput) []domain.AvailabilityException {
	result := make([]domain.AvailabilityException, 0, len(exceptions))
	for _, ex := range exceptions {
		entry := domain.AvailabilityException{
			Date:   ex.Date,
			Closed: ex.Closed,
			Reason: ex.Reason,
		}
		for _, slot := range ex.Slots {
			entry.Slots = append(entry.Slots, domain.TimeSlot{
				Start: types.TimeString(slot.Start),
				End:   types.TimeString(slot.End),
			})
		}
		result = append(result, entry)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

func normalizeCategories(categories []CategoryInput, warnings *[]string) []domain.Category {
	result := make([]domain.Category, 0, len(categories))

	for i, cat := range categories {
		sortOrder := i
		if cat.SortOrder != nil {
			sortOrder = *cat.SortOrder
		}

		entry := domain.Category{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			SortOrder:   sortOrder,
		}

		for _, svc := range cat.Services {
			entry.Services = append(entry.Services, normalizeService(svc, warnings))
		}
		result = append(result, entry)
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result
}

func normalizeService(svc ServiceInput, warnings *[]string) domain.Service {
	path := fmt.Sprintf("services[%s]", svc.ID)

	duration := roundDurationWithWarning(*svc.Duration, path+".duration", warnings)

	result := domain.Service{
		ID:                svc.ID,
		Name:              svc.Name,
		Description:       svc.Description,
		DurationMinutes:   duration,
		PriceMinorUnits:   *svc.Price,
		Capacity:          svc.Capacity,
		RequiresDeposit:   svc.RequiresDeposit,
		DepositMinorUnits: svc.DepositAmount,
	}
	if svc.BufferBefore != nil {
		result.BufferBeforeMinutes = roundWithWarning(*svc.BufferBefore, path+".bufferBefore", warnings)
	}
	if svc.BufferAfter != nil {
		result.BufferAfterMinutes = roundWithWarning(*svc.BufferAfter, path+".bufferAfter", warnings)
	}
	return result
}

func normalizeBookingLimits(limits *BookingLimitsInput) domain.BookingLimits {
	result := domain.BookingLimits{
		AdvanceBookingDays:      domain.MaxAdvanceBookingDays,
		MaxSimultaneousBookings: domain.DefaultMaxSimultaneousBookings,
	}
	if limits == nil {
		return result
	}
	if limits.AdvanceBookingDays != nil {
		result.AdvanceBookingDays = *limits.AdvanceBookingDays
	}
	if limits.MinNoticeHours != nil {
		result.MinNoticeHours = *limits.MinNoticeHours
	}
	result.MaxBookingsPerCustomerDay = limits.MaxBookingsPerCustomerDay
	if limits.MaxSimultaneousBookings != nil {
		result.MaxSimultaneousBookings = *limits.MaxSimultaneousBookings
	}
	return result
}

func normalizeCancellationPolicy(policy *CancellationPolicyInput) domain.CancellationPolicy {
	result := domain.CancellationPolicy{
		AllowCancellation: true,
		DeadlineHours:     24,
		RefundPolicy:      domain.RefundFull,
	}
	if policy == nil {
		return result
	}
	result.AllowCancellation = policy.AllowCancellation
	if policy.DeadlineHours != nil {
		result.DeadlineHours = *policy.DeadlineHours
	}
	if policy.RefundPolicy != "" {
		result.RefundPolicy = domain.RefundPolicy(policy.RefundPolicy)
	}
	result.RefundPercentage = policy.RefundPercentage
	return result
}

// roundWithWarning округляет значение к грейну и пишет предупреждение,
// если значение изменилось. Используется для буферов, где 0 допустим.
func roundWithWarning(minutes int, path string, warnings *[]string) int {
	rounded := domain.RoundToGrain(minutes)
	if rounded != minutes {
		*warnings = append(*warnings, fmt.Sprintf("%s: %d minutes rounded to %d (%d-minute grain)",
			path, minutes, rounded, domain.GrainMinutes))
	}
	return rounded
}

// roundDurationWithWarning как roundWithWarning, но не даёт длительности
// обнулиться: округление вниз упирается в один грейн
func roundDurationWithWarning(minutes int, path string, warnings *[]string) int {
	rounded := domain.RoundToGrain(minutes)
	if rounded == 0 {
		rounded = domain.GrainMinutes
	}
	if rounded != minutes {
		*warnings = append(*warnings, fmt.Sprintf("%s: %d minutes rounded to %d (%d-minute grain)",
			path, minutes, rounded, domain.GrainMinutes))
	}
	return rounded
}
