package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/pkg/ptr"
)

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time { return p.now }

// validInput полностью валидная конфигурация без единого предупреждения
func validInput() *ConfigInput {
	days := []DayInput{
		{Day: "monday", Enabled: ptr.Ptr(true), Slots: []SlotInput{{Start: "09:00", End: "18:00"}}},
		{Day: "tuesday", Enabled: ptr.Ptr(true), Slots: []SlotInput{{Start: "09:00", End: "18:00"}}},
		{Day: "wednesday", Enabled: ptr.Ptr(true), Slots: []SlotInput{{Start: "09:00", End: "18:00"}}},
		{Day: "thursday", Enabled: ptr.Ptr(true), Slots: []SlotInput{{Start: "09:00", End: "18:00"}}},
		{Day: "friday", Enabled: ptr.Ptr(true), Slots: []SlotInput{{Start: "09:00", End: "18:00"}}},
		{Day: "saturday", Enabled: ptr.Ptr(false)},
		{Day: "sunday", Enabled: ptr.Ptr(false)},
	}

	return &ConfigInput{
		Version: ptr.Ptr("1.0.0"),
		Business: &BusinessInput{
			ID:          "glow-salon",
			Name:        "Glow Salon",
			Description: ptr.Ptr("Hair and beauty"),
			Timezone:    "Europe/Berlin",
			Locale:      "de-DE",
			Currency:    "EUR",
		},
		Contact: &ContactInput{
			Address: "Hauptstrasse 1, Berlin",
			Email:   "hello@glow-salon.example",
			Phone:   "+49 30 1234567",
			Website: ptr.Ptr("https://glow-salon.example"),
		},
		TimeSlotDuration: ptr.Ptr(30),
		Availability:     days,
		Categories: []CategoryInput{
			{
				ID:   "hair",
				Name: "Hair",
				Services: []ServiceInput{
					{ID: "haircut", Name: "Haircut", Duration: ptr.Ptr(30), Price: ptr.Ptr(3000)},
				},
			},
		},
		BookingLimits: &BookingLimitsInput{
			AdvanceBookingDays:      ptr.Ptr(30),
			MaxSimultaneousBookings: ptr.Ptr(1),
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	res := NewValidator().Validate(validInput())

	require.True(t, res.Valid, "errors: %v", res.Errors)
	require.NotNil(t, res.Config)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, "glow-salon", res.Config.Business.ID)
	assert.Len(t, res.Config.Availability, 7)
	assert.Equal(t, domain.Monday, res.Config.Availability[0].Day)
}

func TestValidate_NilInput(t *testing.T) {
	res := NewValidator().Validate(nil)

	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "config: document is empty")
}

func TestValidate_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *ConfigInput)
		wantErr string
	}{
		{
			name:    "missing version",
			mutate:  func(in *ConfigInput) { in.Version = nil },
			wantErr: "version: required field is missing",
		},
		{
			name:    "invalid semver",
			mutate:  func(in *ConfigInput) { in.Version = ptr.Ptr("v1") },
			wantErr: `version: "v1" is not a valid semver string`,
		},
		{
			name:    "missing business section",
			mutate:  func(in *ConfigInput) { in.Business = nil },
			wantErr: "business: required section is missing",
		},
		{
			name:    "uppercase business id",
			mutate:  func(in *ConfigInput) { in.Business.ID = "Glow-Salon" },
			wantErr: `business.id: "Glow-Salon" is not a valid slug (lowercase letters, digits, hyphens)`,
		},
		{
			name:    "unknown timezone",
			mutate:  func(in *ConfigInput) { in.Business.Timezone = "Mars/Olympus" },
			wantErr: `business.timezone: unknown IANA timezone "Mars/Olympus"`,
		},
		{
			name:    "Local is not an IANA name",
			mutate:  func(in *ConfigInput) { in.Business.Timezone = "Local" },
			wantErr: `business.timezone: "Local" is not an IANA timezone name`,
		},
		{
			name:    "bad currency",
			mutate:  func(in *ConfigInput) { in.Business.Currency = "euro" },
			wantErr: `business.currency: "euro" is not a 3-letter ISO 4217 code`,
		},
		{
			name:    "bad email",
			mutate:  func(in *ConfigInput) { in.Contact.Email = "not-an-email" },
			wantErr: `contact.email: "not-an-email" is not a valid email address`,
		},
		{
			name:    "latitude out of range",
			mutate:  func(in *ConfigInput) { in.Contact.Latitude = ptr.Ptr(91.5) },
			wantErr: "contact.latitude: 91.5 is out of range [-90, 90]",
		},
		{
			name:    "timeSlotDuration out of range",
			mutate:  func(in *ConfigInput) { in.TimeSlotDuration = ptr.Ptr(500) },
			wantErr: "timeSlotDuration: 500 is out of range [1, 480]",
		},
		{
			name: "bad slot time format",
			mutate: func(in *ConfigInput) {
				in.Availability[0].Slots = []SlotInput{{Start: "9:00", End: "18:00"}}
			},
			wantErr: `availability[monday].slots[0].start: "9:00" is not a valid time (expected HH:MM, 24h)`,
		},
		{
			name: "open and slots are mutually exclusive",
			mutate: func(in *ConfigInput) {
				in.Availability[0].Open = ptr.Ptr("09:00")
				in.Availability[0].Close = ptr.Ptr("18:00")
			},
			wantErr: "availability[monday]: open/close and slots are mutually exclusive",
		},
		{
			name: "legacy format requires both bounds",
			mutate: func(in *ConfigInput) {
				in.Availability[0].Slots = nil
				in.Availability[0].Open = ptr.Ptr("09:00")
			},
			wantErr: "availability[monday]: legacy format requires both open and close",
		},
		{
			name: "bad exception date",
			mutate: func(in *ConfigInput) {
				in.AvailabilityExceptions = []ExceptionInput{{Date: "31-12-2030", Closed: true}}
			},
			wantErr: `availabilityExceptions[0].date: "31-12-2030" is not a valid date (expected YYYY-MM-DD)`,
		},
		{
			name:    "no categories",
			mutate:  func(in *ConfigInput) { in.Categories = nil },
			wantErr: "categories: at least one category is required",
		},
		{
			name: "negative price",
			mutate: func(in *ConfigInput) {
				in.Categories[0].Services[0].Price = ptr.Ptr(-1)
			},
			wantErr: "services[haircut].price: must not be negative, got -1",
		},
		{
			name: "zero capacity",
			mutate: func(in *ConfigInput) {
				in.Categories[0].Services[0].Capacity = ptr.Ptr(0)
			},
			wantErr: "services[haircut].capacity: must be positive, got 0",
		},
		{
			name: "advance booking days above limit",
			mutate: func(in *ConfigInput) {
				in.BookingLimits.AdvanceBookingDays = ptr.Ptr(400)
			},
			wantErr: "bookingLimits.advanceBookingDays: 400 is out of range [0, 365]",
		},
		{
			name: "unknown refund policy",
			mutate: func(in *ConfigInput) {
				in.CancellationPolicy = &CancellationPolicyInput{RefundPolicy: "store-credit"}
			},
			wantErr: `cancellationPolicy.refundPolicy: "store-credit" is not one of full, partial, none`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)

			res := NewValidator().Validate(in)

			assert.False(t, res.Valid)
			assert.Contains(t, res.Errors, tt.wantErr)
		})
	}
}

func TestValidate_WeekCoverage(t *testing.T) {
	t.Run("six entries rejected", func(t *testing.T) {
		in := validInput()
		in.Availability = in.Availability[:6]

		res := NewValidator().Validate(in)

		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "availability: expected exactly 7 entries (one per day of week), got 6")
		assert.Contains(t, res.Errors, "availability: missing entry for sunday")
	})

	t.Run("duplicate day rejected", func(t *testing.T) {
		in := validInput()
		in.Availability = append(in.Availability, DayInput{Day: "monday", Enabled: ptr.Ptr(false)})

		res := NewValidator().Validate(in)

		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "availability: duplicate entry for monday")
	})
}

func TestValidate_DaySlots(t *testing.T) {
	t.Run("enabled day without slots", func(t *testing.T) {
		in := validInput()
		in.Availability[0].Slots = nil
		in.Availability[0].Enabled = ptr.Ptr(true)

		res := NewValidator().Validate(in)

		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "availability[monday]: enabled day must have at least one slot")
	})

	t.Run("start not before end", func(t *testing.T) {
		in := validInput()
		in.Availability[0].Slots = []SlotInput{{Start: "18:00", End: "09:00"}}

		res := NewValidator().Validate(in)

		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "availability[monday].slots[0]: start 18:00 must be before end 09:00")
	})

	t.Run("overlapping slots", func(t *testing.T) {
		in := validInput()
		in.Availability[0].Slots = []SlotInput{
			{Start: "09:00", End: "13:00"},
			{Start: "12:00", End: "18:00"},
		}

		res := NewValidator().Validate(in)

		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "availability[monday].slots[1]: overlaps previous slot ending at 13:00")
	})

	t.Run("back to back slots allowed", func(t *testing.T) {
		in := validInput()
		in.Availability[0].Slots = []SlotInput{
			{Start: "09:00", End: "13:00"},
			{Start: "13:00", End: "18:00"},
		}

		res := NewValidator().Validate(in)

		assert.True(t, res.Valid, "errors: %v", res.Errors)
	})
}

func TestValidate_SplitShiftsSingleOpenDay(t *testing.T) {
	// Понедельник со сменами, остальные дни выключены: предупреждение
	// "все дни выключены" не должно появиться
	in := validInput()
	in.Availability = []DayInput{
		{Day: "monday", Enabled: ptr.Ptr(true), Slots: []SlotInput{
			{Start: "09:00", End: "13:00"},
			{Start: "14:00", End: "18:00"},
		}},
		{Day: "tuesday", Enabled: ptr.Ptr(false)},
		{Day: "wednesday", Enabled: ptr.Ptr(false)},
		{Day: "thursday", Enabled: ptr.Ptr(false)},
		{Day: "friday", Enabled: ptr.Ptr(false)},
		{Day: "saturday", Enabled: ptr.Ptr(false)},
		{Day: "sunday", Enabled: ptr.Ptr(false)},
	}

	res := NewValidator().Validate(in)

	require.True(t, res.Valid, "errors: %v", res.Errors)
	assert.Empty(t, res.Errors)
	for _, w := range res.Warnings {
		assert.NotContains(t, w, "all seven days are disabled")
	}

	monday, ok := res.Config.AvailabilityFor(domain.Monday)
	require.True(t, ok)
	assert.Len(t, monday.Slots, 2)
}

func TestValidate_AllDaysDisabledWarning(t *testing.T) {
	in := validInput()
	for i := range in.Availability {
		in.Availability[i].Enabled = ptr.Ptr(false)
		in.Availability[i].Slots = nil
	}

	res := NewValidator().Validate(in)

	require.True(t, res.Valid, "errors: %v", res.Errors)
	assert.Contains(t, res.Warnings, "availability: all seven days are disabled, no bookings can be made")
}

func TestValidate_LegacyOpenCloseNormalized(t *testing.T) {
	in := validInput()
	in.Availability[0].Slots = nil
	in.Availability[0].Open = ptr.Ptr("10:00")
	in.Availability[0].Close = ptr.Ptr("19:00")

	res := NewValidator().Validate(in)

	require.True(t, res.Valid, "errors: %v", res.Errors)
	monday, ok := res.Config.AvailabilityFor(domain.Monday)
	require.True(t, ok)
	require.Len(t, monday.Slots, 1)
	assert.Equal(t, "10:00", string(monday.Slots[0].Start))
	assert.Equal(t, "19:00", string(monday.Slots[0].End))
}

func TestValidate_GrainRounding(t *testing.T) {
	t.Run("duration rounded to nearest grain", func(t *testing.T) {
		in := validInput()
		in.Categories[0].Services[0].Duration = ptr.Ptr(32)

		res := NewValidator().Validate(in)

		require.True(t, res.Valid, "errors: %v", res.Errors)
		svc, ok := res.Config.ServiceByID("haircut")
		require.True(t, ok)
		assert.Equal(t, 30, svc.DurationMinutes)
		assert.Contains(t, res.Warnings, "services[haircut].duration: 32 minutes rounded to 30 (5-minute grain)")
	})

	t.Run("tiny duration floors at one grain", func(t *testing.T) {
		in := validInput()
		in.Categories[0].Services[0].Duration = ptr.Ptr(2)

		res := NewValidator().Validate(in)

		require.True(t, res.Valid, "errors: %v", res.Errors)
		svc, ok := res.Config.ServiceByID("haircut")
		require.True(t, ok)
		assert.Equal(t, domain.GrainMinutes, svc.DurationMinutes)
	})

	t.Run("multiple of grain untouched", func(t *testing.T) {
		res := NewValidator().Validate(validInput())

		require.True(t, res.Valid)
		svc, _ := res.Config.ServiceByID("haircut")
		assert.Equal(t, 0, svc.DurationMinutes%domain.GrainMinutes)
		assert.Empty(t, res.Warnings)
	})
}

func TestValidate_Deposits(t *testing.T) {
	t.Run("deposit exceeds price", func(t *testing.T) {
		in := validInput()
		in.Categories[0].Services[0].Price = ptr.Ptr(1000)
		in.Categories[0].Services[0].RequiresDeposit = true
		in.Categories[0].Services[0].DepositAmount = ptr.Ptr(1500)

		res := NewValidator().Validate(in)

		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "services[haircut].depositAmount: deposit 1500 exceeds service price 1000")
	})

	t.Run("deposit required when flag set", func(t *testing.T) {
		in := validInput()
		in.Categories[0].Services[0].RequiresDeposit = true

		res := NewValidator().Validate(in)

		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "services[haircut].depositAmount: required when requiresDeposit is true")
	})

	t.Run("deposit equal to price allowed", func(t *testing.T) {
		in := validInput()
		in.Categories[0].Services[0].RequiresDeposit = true
		in.Categories[0].Services[0].DepositAmount = ptr.Ptr(3000)
		in.Features = &FeaturesInput{OnlinePayments: true}

		res := NewValidator().Validate(in)

		assert.True(t, res.Valid, "errors: %v", res.Errors)
	})
}

func TestValidate_DuplicateIDs(t *testing.T) {
	in := validInput()
	in.Categories = append(in.Categories, CategoryInput{
		ID:   "spa",
		Name: "Spa",
		Services: []ServiceInput{
			{ID: "haircut", Name: "Other haircut", Duration: ptr.Ptr(30), Price: ptr.Ptr(1000)},
		},
	})

	res := NewValidator().Validate(in)

	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "services[haircut].id: duplicate service id")
}

func TestValidate_EmptyCategory(t *testing.T) {
	in := validInput()
	in.Categories = append(in.Categories, CategoryInput{ID: "empty", Name: "Empty"})

	res := NewValidator().Validate(in)

	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "categories[empty]: category must contain at least one service")
}

func TestValidate_ExceptionDates(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	v := NewValidatorWithTime(&fakeTimeProvider{now: now})

	t.Run("past date rejected", func(t *testing.T) {
		in := validInput()
		in.AvailabilityExceptions = []ExceptionInput{{Date: "2026-06-14", Closed: true}}

		res := v.Validate(in)

		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "availabilityExceptions[2026-06-14]: date is in the past")
	})

	t.Run("today allowed", func(t *testing.T) {
		in := validInput()
		in.AvailabilityExceptions = []ExceptionInput{{Date: "2026-06-15", Closed: true}}

		res := v.Validate(in)

		assert.True(t, res.Valid, "errors: %v", res.Errors)
	})

	t.Run("open exception needs slots", func(t *testing.T) {
		in := validInput()
		in.AvailabilityExceptions = []ExceptionInput{{Date: "2026-12-24", Closed: false}}

		res := v.Validate(in)

		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "availabilityExceptions[2026-12-24]: open exception must have at least one slot")
	})
}

func TestValidate_RefundPolicy(t *testing.T) {
	in := validInput()
	in.CancellationPolicy = &CancellationPolicyInput{
		AllowCancellation: true,
		RefundPolicy:      "partial",
	}

	res := NewValidator().Validate(in)

	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "cancellationPolicy.refundPercentage: required when refundPolicy is partial")
}

func TestValidate_Warnings(t *testing.T) {
	t.Run("unusual hours", func(t *testing.T) {
		in := validInput()
		in.Availability[0].Slots = []SlotInput{{Start: "05:00", End: "23:30"}}

		res := NewValidator().Validate(in)

		require.True(t, res.Valid, "errors: %v", res.Errors)
		assert.Contains(t, res.Warnings, "availability[monday]: opens at 05:00, before 06:00")
		assert.Contains(t, res.Warnings, "availability[monday]: closes at 23:30, after 23:00")
		// 05:00-23:30 это 1110 минут, больше 16 часов
		assert.Contains(t, res.Warnings, "availability[monday]: open 1110 minutes, more than 16 hours")
	})

	t.Run("long booking window and small slots", func(t *testing.T) {
		in := validInput()
		in.BookingLimits.AdvanceBookingDays = ptr.Ptr(200)
		in.TimeSlotDuration = ptr.Ptr(10)

		res := NewValidator().Validate(in)

		require.True(t, res.Valid, "errors: %v", res.Errors)
		assert.Contains(t, res.Warnings, "bookingLimits.advanceBookingDays: 200 days is an unusually long booking window")
		assert.Contains(t, res.Warnings, "timeSlotDuration: 10 minutes is unusually small")
	})

	t.Run("high capacity", func(t *testing.T) {
		in := validInput()
		in.Categories[0].Services[0].Capacity = ptr.Ptr(50)

		res := NewValidator().Validate(in)

		require.True(t, res.Valid, "errors: %v", res.Errors)
		assert.Contains(t, res.Warnings, "services[haircut].capacity: 50 is unusually high")
	})

	t.Run("deposit without online payments", func(t *testing.T) {
		in := validInput()
		in.Categories[0].Services[0].RequiresDeposit = true
		in.Categories[0].Services[0].DepositAmount = ptr.Ptr(1000)

		res := NewValidator().Validate(in)

		require.True(t, res.Valid, "errors: %v", res.Errors)
		assert.Contains(t, res.Warnings, "services[haircut]: requires a deposit but features.onlinePayments is disabled")
	})

	t.Run("guest booking contradicts email verification", func(t *testing.T) {
		in := validInput()
		in.BookingRequirements = &BookingRequirementsInput{
			AllowGuestBooking:        true,
			RequireEmailVerification: true,
		}

		res := NewValidator().Validate(in)

		require.True(t, res.Valid, "errors: %v", res.Errors)
		assert.Contains(t, res.Warnings, "bookingRequirements: allowGuestBooking contradicts requireEmailVerification")
	})
}

func TestValidate_Defaults(t *testing.T) {
	in := validInput()
	in.Branding = nil
	in.BookingLimits = nil
	in.CancellationPolicy = nil
	in.Notifications = nil

	res := NewValidator().Validate(in)

	require.True(t, res.Valid, "errors: %v", res.Errors)
	cfg := res.Config

	assert.Equal(t, "#1A1A2E", cfg.Branding.PrimaryColor)
	assert.Equal(t, "#F5F5F5", cfg.Branding.SecondaryColor)
	assert.Equal(t, domain.MaxAdvanceBookingDays, cfg.BookingLimits.AdvanceBookingDays)
	assert.Equal(t, domain.DefaultMaxSimultaneousBookings, cfg.BookingLimits.MaxSimultaneousBookings)
	assert.True(t, cfg.CancellationPolicy.AllowCancellation)
	assert.Equal(t, 24, cfg.CancellationPolicy.DeadlineHours)
	assert.Equal(t, domain.RefundFull, cfg.CancellationPolicy.RefundPolicy)
	assert.True(t, cfg.Notifications.EmailEnabled)

	// Дефолтное окно бронирования в 365 дней тянет предупреждение
	assert.Contains(t, res.Warnings, "bookingLimits.advanceBookingDays: 365 days is an unusually long booking window")
}

func TestValidate_EnabledInferredFromSlots(t *testing.T) {
	in := validInput()
	in.Availability[0].Enabled = nil // есть слоты -> включён
	in.Availability[5].Enabled = nil // saturday, слотов нет -> выключен

	res := NewValidator().Validate(in)

	require.True(t, res.Valid, "errors: %v", res.Errors)
	monday, _ := res.Config.AvailabilityFor(domain.Monday)
	saturday, _ := res.Config.AvailabilityFor(domain.Saturday)
	assert.True(t, monday.Enabled)
	assert.False(t, saturday.Enabled)
}

func TestValidate_ServiceCapacityFallback(t *testing.T) {
	in := validInput()
	in.BookingLimits.MaxSimultaneousBookings = ptr.Ptr(3)

	res := NewValidator().Validate(in)

	require.True(t, res.Valid, "errors: %v", res.Errors)
	svc, ok := res.Config.ServiceByID("haircut")
	require.True(t, ok)
	assert.Nil(t, svc.Capacity)
	assert.Equal(t, 3, res.Config.ServiceCapacity(svc))
}
