package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/pkg/types"
)

// validateStructural проверяет тип/формат/диапазон каждого поля по
// отдельности. Кросс-полевые правила живут в семантическом проходе.
func validateStructural(input *ConfigInput) []string {
	var errs []string

	errs = append(errs, checkVersion(input)...)
	errs = append(errs, checkBusiness(input.Business)...)
	errs = append(errs, checkContact(input.Contact)...)
	errs = append(errs, checkBranding(input.Branding)...)
	errs = append(errs, checkTimeSlotDuration(input.TimeSlotDuration)...)
	errs = append(errs, checkAvailabilityEntries(input.Availability)...)
	errs = append(errs, checkExceptions(input.AvailabilityExceptions)...)
	errs = append(errs, checkCategories(input.Categories)...)
	errs = append(errs, checkBookingLimits(input.BookingLimits)...)
	errs = append(errs, checkCancellationPolicy(input.CancellationPolicy)...)
	errs = append(errs, checkNotifications(input.Notifications)...)

	return errs
}

func checkVersion(input *ConfigInput) []string {
	if input.Version == nil || *input.Version == "" {
		return []string{"version: required field is missing"}
	}
	if !semverPattern.MatchString(*input.Version) {
		return []string{fmt.Sprintf("version: %q is not a valid semver string", *input.Version)}
	}
	return nil
}

func checkBusiness(b *BusinessInput) []string {
	if b == nil {
		return []string{"business: required section is missing"}
	}

	var errs []string
	if err := checkSlug("business.id", b.ID); err != "" {
		errs = append(errs, err)
	}
	if strings.TrimSpace(b.Name) == "" {
		errs = append(errs, "business.name: required field is missing")
	}
	if err := checkTimezone(b.Timezone); err != "" {
		errs = append(errs, err)
	}
	if b.Locale != "" && !localePattern.MatchString(b.Locale) {
		errs = append(errs, fmt.Sprintf("business.locale: %q is not a valid locale (expected ll or ll-CC)", b.Locale))
	}
	if !currencyPattern.MatchString(b.Currency) {
		errs = append(errs, fmt.Sprintf("business.currency: %q is not a 3-letter ISO 4217 code", b.Currency))
	}
	return errs
}

func checkTimezone(tz string) string {
	if tz == "" {
		return "business.timezone: required field is missing"
	}
	// "Local" зависит от окружения процесса и не является именем IANA
	if tz == "Local" {
		return fmt.Sprintf("business.timezone: %q is not an IANA timezone name", tz)
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Sprintf("business.timezone: unknown IANA timezone %q", tz)
	}
	return ""
}

func checkContact(c *ContactInput) []string {
	if c == nil {
		return []string{"contact: required section is missing"}
	}

	var errs []string
	if strings.TrimSpace(c.Address) == "" {
		errs = append(errs, "contact.address: required field is missing")
	}
	if c.Email == "" {
		errs = append(errs, "contact.email: required field is missing")
	} else if _, err := mail.ParseAddress(c.Email); err != nil {
		errs = append(errs, fmt.Sprintf("contact.email: %q is not a valid email address", c.Email))
	}
	if c.Phone == "" {
		errs = append(errs, "contact.phone: required field is missing")
	} else if !phonePattern.MatchString(c.Phone) {
		errs = append(errs, fmt.Sprintf("contact.phone: %q is not a valid phone number", c.Phone))
	}
	if c.Website != nil && *c.Website != "" && !urlPattern.MatchString(*c.Website) {
		errs = append(errs, fmt.Sprintf("contact.website: %q is not a valid URL", *c.Website))
	}
	if c.Latitude != nil && (*c.Latitude < -90 || *c.Latitude > 90) {
		errs = append(errs, fmt.Sprintf("contact.latitude: %v is out of range [-90, 90]", *c.Latitude))
	}
	if c.Longitude != nil && (*c.Longitude < -180 || *c.Longitude > 180) {
		errs = append(errs, fmt.Sprintf("contact.longitude: %v is out of range [-180, 180]", *c.Longitude))
	}
	return errs
}

func checkBranding(b *BrandingInput) []string {
	if b == nil {
		// Секция опциональна; нормализация подставит дефолтные цвета
		return nil
	}

	var errs []string
	if b.PrimaryColor != "" && !hexColorPattern.MatchString(b.PrimaryColor) {
		errs = append(errs, fmt.Sprintf("branding.primaryColor: %q is not a hex color", b.PrimaryColor))
	}
	if b.SecondaryColor != "" && !hexColorPattern.MatchString(b.SecondaryColor) {
		errs = append(errs, fmt.Sprintf("branding.secondaryColor: %q is not a hex color", b.SecondaryColor))
	}
	if b.LogoURL != nil && *b.LogoURL != "" && !urlPattern.MatchString(*b.LogoURL) {
		errs = append(errs, fmt.Sprintf("branding.logoUrl: %q is not a valid URL", *b.LogoURL))
	}
	if b.CoverImageURL != nil && *b.CoverImageURL != "" && !urlPattern.MatchString(*b.CoverImageURL) {
		errs = append(errs, fmt.Sprintf("branding.coverImageUrl: %q is not a valid URL", *b.CoverImageURL))
	}
	return errs
}

func checkTimeSlotDuration(d *int) []string {
	if d == nil {
		return []string{"timeSlotDuration: required field is missing"}
	}
	if *d < 1 || *d > domain.MaxTimeSlotDuration {
		return []string{fmt.Sprintf("timeSlotDuration: %d is out of range [1, %d]", *d, domain.MaxTimeSlotDuration)}
	}
	return nil
}

func checkAvailabilityEntries(days []DayInput) []string {
	if len(days) == 0 {
		return []string{"availability: required section is missing"}
	}

	var errs []string
	for i, day := range days {
		path := fmt.Sprintf("availability[%d]", i)
		if !domain.Weekday(day.Day).IsValid() {
			errs = append(errs, fmt.Sprintf("%s.day: %q is not a day of week", path, day.Day))
			continue
		}
		path = fmt.Sprintf("availability[%s]", day.Day)

		// Легаси-пара и slots взаимоисключающие в одной записи
		hasLegacy := day.Open != nil || day.Close != nil
		if hasLegacy && len(day.Slots) > 0 {
			errs = append(errs, fmt.Sprintf("%s: open/close and slots are mutually exclusive", path))
			continue
		}
		if hasLegacy {
			if day.Open == nil || day.Close == nil {
				errs = append(errs, fmt.Sprintf("%s: legacy format requires both open and close", path))
				continue
			}
			errs = append(errs, checkTimeField(path+".open", *day.Open)...)
			errs = append(errs, checkTimeField(path+".close", *day.Close)...)
		}
		for j, slot := range day.Slots {
			slotPath := fmt.Sprintf("%s.slots[%d]", path, j)
			errs = append(errs, checkTimeField(slotPath+".start", slot.Start)...)
			errs = append(errs, checkTimeField(slotPath+".end", slot.End)...)
		}
	}
	return errs
}

func checkExceptions(exceptions []ExceptionInput) []string {
	var errs []string
	for i, ex := range exceptions {
		path := fmt.Sprintf("availabilityExceptions[%d]", i)
		if ex.Date == "" {
			errs = append(errs, path+".date: required field is missing")
			continue
		}
		if _, err := time.Parse(domain.DateFormat, ex.Date); err != nil {
			errs = append(errs, fmt.Sprintf("%s.date: %q is not a valid date (expected YYYY-MM-DD)", path, ex.Date))
			continue
		}
		for j, slot := range ex.Slots {
			slotPath := fmt.Sprintf("availabilityExceptions[%s].slots[%d]", ex.Date, j)
			errs = append(errs, checkTimeField(slotPath+".start", slot.Start)...)
			errs = append(errs, checkTimeField(slotPath+".end", slot.End)...)
		}
	}
	return errs
}

func checkCategories(categories []CategoryInput) []string {
	if len(categories) == 0 {
		return []string{"categories: at least one category is required"}
	}

	var errs []string
	for i, cat := range categories {
		path := fmt.Sprintf("categories[%d]", i)
		if cat.ID != "" {
			path = fmt.Sprintf("categories[%s]", cat.ID)
		}
		if err := checkSlug(path+".id", cat.ID); err != "" {
			errs = append(errs, err)
		}
		if strings.TrimSpace(cat.Name) == "" {
			errs = append(errs, path+".name: required field is missing")
		}
		for j, svc := range cat.Services {
			svcPath := fmt.Sprintf("%s.services[%d]", path, j)
			if svc.ID != "" {
				svcPath = fmt.Sprintf("services[%s]", svc.ID)
			}
			errs = append(errs, checkService(svcPath, svc)...)
		}
	}
	return errs
}

func checkService(path string, svc ServiceInput) []string {
	var errs []string

	if err := checkSlug(path+".id", svc.ID); err != "" {
		errs = append(errs, err)
	}
	if strings.TrimSpace(svc.Name) == "" {
		errs = append(errs, path+".name: required field is missing")
	}
	if svc.Duration == nil {
		errs = append(errs, path+".duration: required field is missing")
	} else if *svc.Duration < 1 || *svc.Duration > domain.MaxServiceDurationMinutes {
		errs = append(errs, fmt.Sprintf("%s.duration: %d is out of range [1, %d]",
			path, *svc.Duration, domain.MaxServiceDurationMinutes))
	}
	if svc.Price == nil {
		errs = append(errs, path+".price: required field is missing")
	} else if *svc.Price < 0 {
		errs = append(errs, fmt.Sprintf("%s.price: must not be negative, got %d", path, *svc.Price))
	}
	if svc.Capacity != nil && *svc.Capacity < 1 {
		errs = append(errs, fmt.Sprintf("%s.capacity: must be positive, got %d", path, *svc.Capacity))
	}
	if svc.BufferBefore != nil && *svc.BufferBefore < 0 {
		errs = append(errs, fmt.Sprintf("%s.bufferBefore: must not be negative, got %d", path, *svc.BufferBefore))
	}
	if svc.BufferAfter != nil && *svc.BufferAfter < 0 {
		errs = append(errs, fmt.Sprintf("%s.bufferAfter: must not be negative, got %d", path, *svc.BufferAfter))
	}
	if svc.DepositAmount != nil && *svc.DepositAmount < 0 {
		errs = append(errs, fmt.Sprintf("%s.depositAmount: must not be negative, got %d", path, *svc.DepositAmount))
	}
	return errs
}

func checkBookingLimits(limits *BookingLimitsInput) []string {
	if limits == nil {
		// Секция опциональна; нормализация подставит дефолты
		return nil
	}

	var errs []string
	if limits.AdvanceBookingDays != nil &&
		(*limits.AdvanceBookingDays < domain.MinAdvanceBookingDays || *limits.AdvanceBookingDays > domain.MaxAdvanceBookingDays) {
		errs = append(errs, fmt.Sprintf("bookingLimits.advanceBookingDays: %d is out of range [%d, %d]",
			*limits.AdvanceBookingDays, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays))
	}
	if limits.MinNoticeHours != nil && *limits.MinNoticeHours < 0 {
		errs = append(errs, fmt.Sprintf("bookingLimits.minNoticeHours: must not be negative, got %d", *limits.MinNoticeHours))
	}
	if limits.MaxBookingsPerCustomerDay != nil && *limits.MaxBookingsPerCustomerDay < 1 {
		errs = append(errs, fmt.Sprintf("bookingLimits.maxBookingsPerCustomerDay: must be positive, got %d", *limits.MaxBookingsPerCustomerDay))
	}
	if limits.MaxSimultaneousBookings != nil &&
		(*limits.MaxSimultaneousBookings < 1 || *limits.MaxSimultaneousBookings > domain.MaxSimultaneousBookingsLimit) {
		errs = append(errs, fmt.Sprintf("bookingLimits.maxSimultaneousBookings: %d is out of range [1, %d]",
			*limits.MaxSimultaneousBookings, domain.MaxSimultaneousBookingsLimit))
	}
	return errs
}

func checkCancellationPolicy(policy *CancellationPolicyInput) []string {
	if policy == nil {
		return nil
	}

	var errs []string
	if policy.DeadlineHours != nil &&
		(*policy.DeadlineHours < domain.MinCancellationDeadlineHours || *policy.DeadlineHours > domain.MaxCancellationDeadlineHours) {
		errs = append(errs, fmt.Sprintf("cancellationPolicy.deadlineHours: %d is out of range [%d, %d]",
			*policy.DeadlineHours, domain.MinCancellationDeadlineHours, domain.MaxCancellationDeadlineHours))
	}
	if policy.RefundPolicy != "" && !domain.RefundPolicy(policy.RefundPolicy).IsValid() {
		errs = append(errs, fmt.Sprintf("cancellationPolicy.refundPolicy: %q is not one of full, partial, none", policy.RefundPolicy))
	}
	if policy.RefundPercentage != nil && (*policy.RefundPercentage < 0 || *policy.RefundPercentage > 100) {
		errs = append(errs, fmt.Sprintf("cancellationPolicy.refundPercentage: %d is out of range [0, 100]", *policy.RefundPercentage))
	}
	return errs
}

func checkNotifications(n *NotificationsInput) []string {
	if n == nil {
		return nil
	}
	if n.ReminderHoursBefore != nil && *n.ReminderHoursBefore < 0 {
		return []string{fmt.Sprintf("notifications.reminderHoursBefore: must not be negative, got %d", *n.ReminderHoursBefore)}
	}
	return nil
}

func checkTimeField(path, value string) []string {
	if err := types.TimeString(value).Validate(); err != nil {
		return []string{fmt.Sprintf("%s: %q is not a valid time (expected HH:MM, 24h)", path, value)}
	}
	return nil
}

func checkSlug(path, value string) string {
	if value == "" {
		return path + ": required field is missing"
	}
	if len(value) > 63 || !slugPattern.MatchString(value) {
		return fmt.Sprintf("%s: %q is not a valid slug (lowercase letters, digits, hyphens)", path, value)
	}
	return ""
}
