package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/internal/service/validation"
	"github.com/m04kA/SMC-TenantService/pkg/ptr"
)

// Serialize переводит каноническую конфигурацию обратно в YAML-документ.
// Выход всегда в slots-форме (легаси open/close не восстанавливается),
// повторный Parse сериализованного документа возвращает ту же конфигурацию.
func (p *Parser) Serialize(cfg *domain.TenantConfig) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("serialize: config is nil")
	}
	data, err := yaml.Marshal(buildDocument(cfg))
	if err != nil {
		return "", fmt.Errorf("serialize: marshal document: %v", err)
	}
	return string(data), nil
}

func buildDocument(cfg *domain.TenantConfig) *validation.ConfigInput {
	doc := &validation.ConfigInput{
		Version: ptr.Ptr(cfg.Version),
		Business: &validation.BusinessInput{
			ID:          cfg.Business.ID,
			Name:        cfg.Business.Name,
			Description: cfg.Business.Description,
			Timezone:    cfg.Business.Timezone,
			Locale:      cfg.Business.Locale,
			Currency:    cfg.Business.Currency,
		},
		Contact: &validation.ContactInput{
			Address:   cfg.Contact.Address,
			Email:     cfg.Contact.Email,
			Phone:     cfg.Contact.Phone,
			Website:   cfg.Contact.Website,
			Social:    cfg.Contact.Social,
			Latitude:  cfg.Contact.Latitude,
			Longitude: cfg.Contact.Longitude,
		},
		Branding: &validation.BrandingInput{
			PrimaryColor:   cfg.Branding.PrimaryColor,
			SecondaryColor: cfg.Branding.SecondaryColor,
			LogoURL:        cfg.Branding.LogoURL,
			CoverImageURL:  cfg.Branding.CoverImageURL,
		},
		TimeSlotDuration: ptr.Ptr(cfg.TimeSlotDuration),
		BookingRequirements: &validation.BookingRequirementsInput{
			RequireName:              cfg.BookingRequirements.RequireName,
			RequirePhone:             cfg.BookingRequirements.RequirePhone,
			RequireEmailVerification: cfg.BookingRequirements.RequireEmailVerification,
			AllowGuestBooking:        cfg.BookingRequirements.AllowGuestBooking,
		},
		BookingLimits: &validation.BookingLimitsInput{
			AdvanceBookingDays:        ptr.Ptr(cfg.BookingLimits.AdvanceBookingDays),
			MinNoticeHours:            ptr.Ptr(cfg.BookingLimits.MinNoticeHours),
			MaxBookingsPerCustomerDay: cfg.BookingLimits.MaxBookingsPerCustomerDay,
			MaxSimultaneousBookings:   ptr.Ptr(cfg.BookingLimits.MaxSimultaneousBookings),
		},
		CancellationPolicy: &validation.CancellationPolicyInput{
			AllowCancellation: cfg.CancellationPolicy.AllowCancellation,
			DeadlineHours:     ptr.Ptr(cfg.CancellationPolicy.DeadlineHours),
			RefundPolicy:      string(cfg.CancellationPolicy.RefundPolicy),
			RefundPercentage:  cfg.CancellationPolicy.RefundPercentage,
		},
		Notifications: &validation.NotificationsInput{
			EmailEnabled:        cfg.Notifications.EmailEnabled,
			SMSEnabled:          cfg.Notifications.SMSEnabled,
			ReminderHoursBefore: cfg.Notifications.ReminderHoursBefore,
		},
		Features: &validation.FeaturesInput{
			OnlinePayments:  cfg.Features.OnlinePayments,
			CustomerReviews: cfg.Features.CustomerReviews,
			Waitlist:        cfg.Features.Waitlist,
		},
		Metadata: cfg.Metadata,
	}

	for _, day := range cfg.Availability {
		doc.Availability = append(doc.Availability, validation.DayInput{
			Day:     string(day.Day),
			Enabled: ptr.Ptr(day.Enabled),
			Slots:   buildSlots(day.Slots),
		})
	}

	for _, exc := range cfg.AvailabilityExceptions {
		doc.AvailabilityExceptions = append(doc.AvailabilityExceptions, validation.ExceptionInput{
			Date:   exc.Date,
			Closed: exc.Closed,
			Slots:  buildSlots(exc.Slots),
			Reason: exc.Reason,
		})
	}

	for _, cat := range cfg.Categories {
		entry := validation.CategoryInput{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			SortOrder:   ptr.Ptr(cat.SortOrder),
		}
		for _, svc := range cat.Services {
			entry.Services = append(entry.Services, validation.ServiceInput{
				ID:              svc.ID,
				Name:            svc.Name,
				Description:     svc.Description,
				Duration:        ptr.Ptr(svc.DurationMinutes),
				Price:           ptr.Ptr(svc.PriceMinorUnits),
				Capacity:        svc.Capacity,
				BufferBefore:    ptr.Ptr(svc.BufferBeforeMinutes),
				BufferAfter:     ptr.Ptr(svc.BufferAfterMinutes),
				RequiresDeposit: svc.RequiresDeposit,
				DepositAmount:   svc.DepositMinorUnits,
			})
		}
		doc.Categories = append(doc.Categories, entry)
	}

	return doc
}

func buildSlots(slots []domain.TimeSlot) []validation.SlotInput {
	if len(slots) == 0 {
		return nil
	}
	out := make([]validation.SlotInput, 0, len(slots))
	for _, s := range slots {
		out = append(out, validation.SlotInput{Start: s.Start.String(), End: s.End.String()})
	}
	return out
}
