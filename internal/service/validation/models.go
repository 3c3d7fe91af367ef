package validation

import "github.com/m04kA/SMC-TenantService/internal/domain"

// ConfigInput входная (сырая) форма конфигурации тенанта до валидации.
// Указатели отличают отсутствующее поле от нулевого значения.
type ConfigInput struct {
	Version                *string                   `yaml:"version,omitempty" json:"version,omitempty"`
	Business               *BusinessInput            `yaml:"business,omitempty" json:"business,omitempty"`
	Contact                *ContactInput             `yaml:"contact,omitempty" json:"contact,omitempty"`
	Branding               *BrandingInput            `yaml:"branding,omitempty" json:"branding,omitempty"`
	TimeSlotDuration       *int                      `yaml:"timeSlotDuration,omitempty" json:"timeSlotDuration,omitempty"`
	Availability           []DayInput                `yaml:"availability,omitempty" json:"availability,omitempty"`
	AvailabilityExceptions []ExceptionInput          `yaml:"availabilityExceptions,omitempty" json:"availabilityExceptions,omitempty"`
	Categories             []CategoryInput           `yaml:"categories,omitempty" json:"categories,omitempty"`
	BookingRequirements    *BookingRequirementsInput `yaml:"bookingRequirements,omitempty" json:"bookingRequirements,omitempty"`
	BookingLimits          *BookingLimitsInput       `yaml:"bookingLimits,omitempty" json:"bookingLimits,omitempty"`
	CancellationPolicy     *CancellationPolicyInput  `yaml:"cancellationPolicy,omitempty" json:"cancellationPolicy,omitempty"`
	Notifications          *NotificationsInput       `yaml:"notifications,omitempty" json:"notifications,omitempty"`
	Features               *FeaturesInput            `yaml:"features,omitempty" json:"features,omitempty"`
	Metadata               map[string]string         `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// BusinessInput сырые данные бизнеса
type BusinessInput struct {
	ID          string  `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string  `yaml:"name,omitempty" json:"name,omitempty"`
	Description *string `yaml:"description,omitempty" json:"description,omitempty"`
	Timezone    string  `yaml:"timezone,omitempty" json:"timezone,omitempty"`
	Locale      string  `yaml:"locale,omitempty" json:"locale,omitempty"`
	Currency    string  `yaml:"currency,omitempty" json:"currency,omitempty"`
}

// ContactInput сырые контактные данные
type ContactInput struct {
	Address   string            `yaml:"address,omitempty" json:"address,omitempty"`
	Email     string            `yaml:"email,omitempty" json:"email,omitempty"`
	Phone     string            `yaml:"phone,omitempty" json:"phone,omitempty"`
	Website   *string           `yaml:"website,omitempty" json:"website,omitempty"`
	Social    map[string]string `yaml:"social,omitempty" json:"social,omitempty"`
	Latitude  *float64          `yaml:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64          `yaml:"longitude,omitempty" json:"longitude,omitempty"`
}

// BrandingInput сырые данные брендинга. Секция опциональна.
type BrandingInput struct {
	PrimaryColor   string  `yaml:"primaryColor,omitempty" json:"primaryColor,omitempty"`
	SecondaryColor string  `yaml:"secondaryColor,omitempty" json:"secondaryColor,omitempty"`
	LogoURL        *string `yaml:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	CoverImageURL  *string `yaml:"coverImageUrl,omitempty" json:"coverImageUrl,omitempty"`
}

// DayInput расписание одного дня. Либо легаси-пара open/close,
// либо массив slots (перерывы, split shifts).
type DayInput struct {
	Day     string      `yaml:"day,omitempty" json:"day,omitempty"`
	Enabled *bool       `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Open    *string     `yaml:"open,omitempty" json:"open,omitempty"`
	Close   *string     `yaml:"close,omitempty" json:"close,omitempty"`
	Slots   []SlotInput `yaml:"slots,omitempty" json:"slots,omitempty"`
}

// SlotInput сырой интервал времени
type SlotInput struct {
	Start string `yaml:"start,omitempty" json:"start,omitempty"`
	End   string `yaml:"end,omitempty" json:"end,omitempty"`
}

// ExceptionInput переопределение расписания на дату
type ExceptionInput struct {
	Date   string      `yaml:"date,omitempty" json:"date,omitempty"`
	Closed bool        `yaml:"closed,omitempty" json:"closed,omitempty"`
	Slots  []SlotInput `yaml:"slots,omitempty" json:"slots,omitempty"`
	Reason *string     `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// CategoryInput сырая категория услуг
type CategoryInput struct {
	ID          string         `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string         `yaml:"name,omitempty" json:"name,omitempty"`
	Description *string        `yaml:"description,omitempty" json:"description,omitempty"`
	SortOrder   *int           `yaml:"sortOrder,omitempty" json:"sortOrder,omitempty"`
	Services    []ServiceInput `yaml:"services,omitempty" json:"services,omitempty"`
}

// ServiceInput сырая услуга
type ServiceInput struct {
	ID              string  `yaml:"id,omitempty" json:"id,omitempty"`
	Name            string  `yaml:"name,omitempty" json:"name,omitempty"`
	Description     *string `yaml:"description,omitempty" json:"description,omitempty"`
	Duration        *int    `yaml:"duration,omitempty" json:"duration,omitempty"`
	Price           *int    `yaml:"price,omitempty" json:"price,omitempty"`
	Capacity        *int    `yaml:"capacity,omitempty" json:"capacity,omitempty"`
	BufferBefore    *int    `yaml:"bufferBefore,omitempty" json:"bufferBefore,omitempty"`
	BufferAfter     *int    `yaml:"bufferAfter,omitempty" json:"bufferAfter,omitempty"`
	RequiresDeposit bool    `yaml:"requiresDeposit,omitempty" json:"requiresDeposit,omitempty"`
	DepositAmount   *int    `yaml:"depositAmount,omitempty" json:"depositAmount,omitempty"`
}

// BookingRequirementsInput требования к бронированию
type BookingRequirementsInput struct {
	RequireName              bool `yaml:"requireName,omitempty" json:"requireName,omitempty"`
	RequirePhone             bool `yaml:"requirePhone,omitempty" json:"requirePhone,omitempty"`
	RequireEmailVerification bool `yaml:"requireEmailVerification,omitempty" json:"requireEmailVerification,omitempty"`
	AllowGuestBooking        bool `yaml:"allowGuestBooking,omitempty" json:"allowGuestBooking,omitempty"`
}

// BookingLimitsInput лимиты бронирования
type BookingLimitsInput struct {
	AdvanceBookingDays        *int `yaml:"advanceBookingDays,omitempty" json:"advanceBookingDays,omitempty"`
	MinNoticeHours            *int `yaml:"minNoticeHours,omitempty" json:"minNoticeHours,omitempty"`
	MaxBookingsPerCustomerDay *int `yaml:"maxBookingsPerCustomerDay,omitempty" json:"maxBookingsPerCustomerDay,omitempty"`
	MaxSimultaneousBookings   *int `yaml:"maxSimultaneousBookings,omitempty" json:"maxSimultaneousBookings,omitempty"`
}

// CancellationPolicyInput политика отмены
type CancellationPolicyInput struct {
	AllowCancellation bool   `yaml:"allowCancellation,omitempty" json:"allowCancellation,omitempty"`
	DeadlineHours     *int   `yaml:"deadlineHours,omitempty" json:"deadlineHours,omitempty"`
	RefundPolicy      string `yaml:"refundPolicy,omitempty" json:"refundPolicy,omitempty"`
	RefundPercentage  *int   `yaml:"refundPercentage,omitempty" json:"refundPercentage,omitempty"`
}

// NotificationsInput настройки уведомлений
type NotificationsInput struct {
	EmailEnabled        bool `yaml:"emailEnabled,omitempty" json:"emailEnabled,omitempty"`
	SMSEnabled          bool `yaml:"smsEnabled,omitempty" json:"smsEnabled,omitempty"`
	ReminderHoursBefore *int `yaml:"reminderHoursBefore,omitempty" json:"reminderHoursBefore,omitempty"`
}

// FeaturesInput флаги функциональности
type FeaturesInput struct {
	OnlinePayments  bool `yaml:"onlinePayments,omitempty" json:"onlinePayments,omitempty"`
	CustomerReviews bool `yaml:"customerReviews,omitempty" json:"customerReviews,omitempty"`
	Waitlist        bool `yaml:"waitlist,omitempty" json:"waitlist,omitempty"`
}

// Result результат валидации. Errors блокируют активацию,
// Warnings сопровождают успешный результат и не блокируют её.
type Result struct {
	Valid    bool
	Config   *domain.TenantConfig
	Errors   []string
	Warnings []string
}
