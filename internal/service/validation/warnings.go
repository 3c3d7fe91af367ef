package validation

import (
	"fmt"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/pkg/types"
)

// collectWarnings собирает нефатальные замечания по валидной конфигурации.
// Предупреждения никогда не блокируют активацию.
func collectWarnings(cfg *domain.TenantConfig) []string {
	var warnings []string

	warnings = append(warnings, warnUnusualHours(cfg)...)
	warnings = append(warnings, warnLongDays(cfg)...)
	warnings = append(warnings, warnBookingLimits(cfg)...)
	warnings = append(warnings, warnCapacity(cfg)...)
	warnings = append(warnings, warnMissingOptional(cfg)...)
	warnings = append(warnings, warnPolicyContradictions(cfg)...)
	warnings = append(warnings, warnAllDaysDisabled(cfg)...)

	return warnings
}

// warnUnusualHours: открытие до 06:00 или закрытие после 23:00
func warnUnusualHours(cfg *domain.TenantConfig) []string {
	var warnings []string
	early := types.TimeString(domain.WarnEarlyOpenTime)
	late := types.TimeString(domain.WarnLateCloseTime)

	for _, day := range cfg.Availability {
		if !day.Enabled || len(day.Slots) == 0 {
			continue
		}
		first := day.Slots[0]
		last := day.Slots[len(day.Slots)-1]

		if first.Start.IsBefore(early) {
			warnings = append(warnings, fmt.Sprintf("availability[%s]: opens at %s, before %s",
				day.Day, first.Start, early))
		}
		if last.End.IsAfter(late) {
			warnings = append(warnings, fmt.Sprintf("availability[%s]: closes at %s, after %s",
				day.Day, last.End, late))
		}
	}
	return warnings
}

// warnLongDays: суммарное открытое время дня больше 16 часов
func warnLongDays(cfg *domain.TenantConfig) []string {
	var warnings []string
	for _, day := range cfg.Availability {
		if !day.Enabled {
			continue
		}
		if total := day.TotalMinutes(); total > domain.WarnLongDayMinutes {
			warnings = append(warnings, fmt.Sprintf("availability[%s]: open %d minutes, more than 16 hours",
				day.Day, total))
		}
	}
	return warnings
}

func warnBookingLimits(cfg *domain.TenantConfig) []string {
	var warnings []string
	if cfg.BookingLimits.AdvanceBookingDays > domain.WarnAdvanceBookingDays {
		warnings = append(warnings, fmt.Sprintf("bookingLimits.advanceBookingDays: %d days is an unusually long booking window",
			cfg.BookingLimits.AdvanceBookingDays))
	}
	if cfg.TimeSlotDuration < domain.WarnSmallTimeSlotMinutes {
		warnings = append(warnings, fmt.Sprintf("timeSlotDuration: %d minutes is unusually small",
			cfg.TimeSlotDuration))
	}
	return warnings
}

// warnCapacity: подозрительно большая вместимость на уровне бизнеса или услуги
func warnCapacity(cfg *domain.TenantConfig) []string {
	var warnings []string
	if cfg.BookingLimits.MaxSimultaneousBookings > domain.WarnHighCapacityThreshold {
		warnings = append(warnings, fmt.Sprintf("bookingLimits.maxSimultaneousBookings: %d is unusually high",
			cfg.BookingLimits.MaxSimultaneousBookings))
	}
	for _, svc := range cfg.AllServices() {
		if svc.Capacity != nil && *svc.Capacity > domain.WarnHighCapacityThreshold {
			warnings = append(warnings, fmt.Sprintf("services[%s].capacity: %d is unusually high",
				svc.ID, *svc.Capacity))
		}
	}
	return warnings
}

func warnMissingOptional(cfg *domain.TenantConfig) []string {
	var warnings []string
	if cfg.Business.Description == nil || *cfg.Business.Description == "" {
		warnings = append(warnings, "business.description: not set, booking page will have no description")
	}
	if cfg.Contact.Website == nil || *cfg.Contact.Website == "" {
		warnings = append(warnings, "contact.website: not set")
	}
	return warnings
}

func warnPolicyContradictions(cfg *domain.TenantConfig) []string {
	var warnings []string

	if !cfg.Features.OnlinePayments {
		for _, svc := range cfg.AllServices() {
			if svc.RequiresDeposit {
				warnings = append(warnings, fmt.Sprintf("services[%s]: requires a deposit but features.onlinePayments is disabled",
					svc.ID))
			}
		}
	}

	if cfg.BookingRequirements.AllowGuestBooking && cfg.BookingRequirements.RequireEmailVerification {
		warnings = append(warnings, "bookingRequirements: allowGuestBooking contradicts requireEmailVerification")
	}
	return warnings
}

// warnAllDaysDisabled: конфигурация валидна, но бизнес не примет ни одной
// брони. Предупреждение только когда выключены буквально все 7 дней.
func warnAllDaysDisabled(cfg *domain.TenantConfig) []string {
	if cfg.AllDaysDisabled() {
		return []string{"availability: all seven days are disabled, no bookings can be made"}
	}
	return nil
}
