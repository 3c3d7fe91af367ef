package get_tenant_config

import (
	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/internal/service/loader"
)

// ConfigResponse HTTP response model
type ConfigResponse struct {
	Source   string       `json:"source"` // cache | authoritative | fallback
	Warnings []string     `json:"warnings,omitempty"`
	Config   TenantConfig `json:"config"`
}

type TenantConfig struct {
	Version                string                  `json:"version"`
	Business               BusinessInfo            `json:"business"`
	Contact                ContactInfo             `json:"contact"`
	Branding               Branding                `json:"branding"`
	TimeSlotDuration       int                     `json:"timeSlotDuration"`
	Availability           []DailyAvailability     `json:"availability"`
	AvailabilityExceptions []AvailabilityException `json:"availabilityExceptions,omitempty"`
	Categories             []Category              `json:"categories"`
	BookingRequirements    BookingRequirements     `json:"bookingRequirements"`
	BookingLimits          BookingLimits           `json:"bookingLimits"`
	CancellationPolicy     CancellationPolicy      `json:"cancellationPolicy"`
	Notifications          Notifications           `json:"notifications"`
	Features               Features                `json:"features"`
	Metadata               map[string]string       `json:"metadata,omitempty"`
}

type BusinessInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Timezone    string  `json:"timezone"`
	Locale      string  `json:"locale"`
	Currency    string  `json:"currency"`
}

type ContactInfo struct {
	Address   string            `json:"address"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Website   *string           `json:"website,omitempty"`
	Social    map[string]string `json:"social,omitempty"`
	Latitude  *float64          `json:"latitude,omitempty"`
	Longitude *float64          `json:"longitude,omitempty"`
}

type Branding struct {
	PrimaryColor   string  `json:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor"`
	LogoURL        *string `json:"logoUrl,omitempty"`
	CoverImageURL  *string `json:"coverImageUrl,omitempty"`
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DailyAvailability struct {
	Day     string     `json:"day"`
	Enabled bool       `json:"enabled"`
	Slots   []TimeSlot `json:"slots"`
}

type AvailabilityException struct {
	Date   string     `json:"date"`
	Closed bool       `json:"closed"`
	Slots  []TimeSlot `json:"slots,omitempty"`
	Reason *string    `json:"reason,omitempty"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	Services    []Service `json:"services"`
}

type Service struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Description         *string `json:"description,omitempty"`
	Duration            int     `json:"duration"`
	Price               int     `json:"price"`
	Capacity            *int    `json:"capacity,omitempty"`
	BufferBeforeMinutes int     `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int     `json:"bufferAfterMinutes"`
	RequiresDeposit     bool    `json:"requiresDeposit"`
	DepositAmount       *int    `json:"depositAmount,omitempty"`
}

type BookingRequirements struct {
	RequireName              bool `json:"requireName"`
	RequirePhone             bool `json:"requirePhone"`
	RequireEmailVerification bool `json:"requireEmailVerification"`
	AllowGuestBooking        bool `json:"allowGuestBooking"`
}

type BookingLimits struct {
	AdvanceBookingDays        int  `json:"advanceBookingDays"`
	MinNoticeHours            int  `json:"minNoticeHours"`
	MaxBookingsPerCustomerDay *int `json:"maxBookingsPerCustomerDay,omitempty"`
	MaxSimultaneousBookings   int  `json:"maxSimultaneousBookings"`
}

type CancellationPolicy struct {
	AllowCancellation bool   `json:"allowCancellation"`
	DeadlineHours     int    `json:"deadlineHours"`
	RefundPolicy      string `json:"refundPolicy"`
	RefundPercentage  *int   `json:"refundPercentage,omitempty"`
}

type Notifications struct {
	EmailEnabled        bool `json:"emailEnabled"`
	SMSEnabled          bool `json:"smsEnabled"`
	ReminderHoursBefore *int `json:"reminderHoursBefore,omitempty"`
}

type Features struct {
	OnlinePayments  bool `json:"onlinePayments"`
	CustomerReviews bool `json:"customerReviews"`
	Waitlist        bool `json:"waitlist"`
}

// FromLoaderResult конвертирует результат резолва в HTTP response
func FromLoaderResult(res *loader.Result) *ConfigResponse {
	return &ConfigResponse{
		Source:   string(res.Source),
		Warnings: res.Warnings,
		Config:   fromDomainConfig(res.Config),
	}
}

func fromDomainConfig(cfg *domain.TenantConfig) TenantConfig {
	out := TenantConfig{
		Version: cfg.Version,
		Business: BusinessInfo{
			ID:          cfg.Business.ID,
			Name:        cfg.Business.Name,
			Description: cfg.Business.Description,
			Timezone:    cfg.Business.Timezone,
			Locale:      cfg.Business.Locale,
			Currency:    cfg.Business.Currency,
		},
		Contact: ContactInfo{
			Address:   cfg.Contact.Address,
			Email:     cfg.Contact.Email,
			Phone:     cfg.Contact.Phone,
			Website:   cfg.Contact.Website,
			Social:    cfg.Contact.Social,
			Latitude:  cfg.Contact.Latitude,
			Longitude: cfg.Contact.Longitude,
		},
		Branding: Branding{
			PrimaryColor:   cfg.Branding.PrimaryColor,
			SecondaryColor: cfg.Branding.SecondaryColor,
			LogoURL:        cfg.Branding.LogoURL,
			CoverImageURL:  cfg.Branding.CoverImageURL,
		},
		TimeSlotDuration: cfg.TimeSlotDuration,
		BookingRequirements: BookingRequirements{
			RequireName:              cfg.BookingRequirements.RequireName,
			RequirePhone:             cfg.BookingRequirements.RequirePhone,
			RequireEmailVerification: cfg.BookingRequirements.RequireEmailVerification,
			AllowGuestBooking:        cfg.BookingRequirements.AllowGuestBooking,
		},
		BookingLimits: BookingLimits{
			AdvanceBookingDays:        cfg.BookingLimits.AdvanceBookingDays,
			MinNoticeHours:            cfg.BookingLimits.MinNoticeHours,
			MaxBookingsPerCustomerDay: cfg.BookingLimits.MaxBookingsPerCustomerDay,
			MaxSimultaneousBookings:   cfg.BookingLimits.MaxSimultaneousBookings,
		},
		CancellationPolicy: CancellationPolicy{
			AllowCancellation: cfg.CancellationPolicy.AllowCancellation,
			DeadlineHours:     cfg.CancellationPolicy.DeadlineHours,
			RefundPolicy:      string(cfg.CancellationPolicy.RefundPolicy),
			RefundPercentage:  cfg.CancellationPolicy.RefundPercentage,
		},
		Notifications: Notifications{
			EmailEnabled:        cfg.Notifications.EmailEnabled,
			SMSEnabled:          cfg.Notifications.SMSEnabled,
			ReminderHoursBefore: cfg.Notifications.ReminderHoursBefore,
		},
		Features: Features{
			OnlinePayments:  cfg.Features.OnlinePayments,
			CustomerReviews: cfg.Features.CustomerReviews,
			Waitlist:        cfg.Features.Waitlist,
		},
		Metadata: cfg.Metadata,
	}

	for _, day := range cfg.Availability {
		out.Availability = append(out.Availability, DailyAvailability{
			Day:     string(day.Day),
			Enabled: day.Enabled,
			Slots:   fromDomainSlots(day.Slots),
		})
	}
	for _, exc := range cfg.AvailabilityExceptions {
		out.AvailabilityExceptions = append(out.AvailabilityExceptions, AvailabilityException{
			Date:   exc.Date,
			Closed: exc.Closed,
			Slots:  fromDomainSlots(exc.Slots),
			Reason: exc.Reason,
		})
	}
	for _, cat := range cfg.Categories {
		services := make([]Service, 0, len(cat.Services))
		for _, svc := range cat.Services {
			services = append(services, Service{
				ID:                  svc.ID,
				Name:                svc.Name,
				Description:         svc.Description,
				Duration:            svc.DurationMinutes,
				Price:               svc.PriceMinorUnits,
				Capacity:            svc.Capacity,
				BufferBeforeMinutes: svc.BufferBeforeMinutes,
				BufferAfterMinutes:  svc.BufferAfterMinutes,
				RequiresDeposit:     svc.RequiresDeposit,
				DepositAmount:       svc.DepositMinorUnits,
			})
		}
		out.Categories = append(out.Categories, Category{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			SortOrder:   cat.SortOrder,
			Services:    services,
		})
	}
	return out
}

func fromDomainSlots(slots []domain.TimeSlot) []TimeSlot {
	out := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, TimeSlot{Start: s.Start.String(), End: s.End.String()})
	}
	return out
}
