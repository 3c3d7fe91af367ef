package domain

// Scheduling grain: every duration and buffer is aligned to this unit
const GrainMinutes = 5

// Business validation constants
const (
	MinTimeSlotDuration = GrainMinutes
	MaxTimeSlotDuration = 480 // 8 hours

	MinServiceDurationMinutes = GrainMinutes
	MaxServiceDurationMinutes = 1440

	MinAdvanceBookingDays = 0
	MaxAdvanceBookingDays = 365

	MinCancellationDeadlineHours = 0
	MaxCancellationDeadlineHours = 168 // 1 week

	MaxSimultaneousBookingsLimit = 100

	MinutesPerDay = 24 * 60
)

// Warning thresholds (не блокируют активацию, см. service/validation)
const (
	WarnEarlyOpenTime         = "06:00"
	WarnLateCloseTime         = "23:00"
	WarnLongDayMinutes        = 16 * 60
	WarnAdvanceBookingDays    = 180
	WarnSmallTimeSlotMinutes  = 15
	WarnHighCapacityThreshold = 20
)

// Default configuration values (используются fallback-конфигом загрузчика)
const (
	DefaultConfigVersion           = "1.0.0"
	DefaultCurrency                = "USD"
	DefaultTimezone                = "UTC"
	DefaultLocale                  = "en-US"
	DefaultTimeSlotDuration        = 30
	DefaultMaxSimultaneousBookings = 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// RoundToGrain округляет minutes к ближайшей границе грейна.
// Нулевые и отрицательные значения не трогает - их отбрасывает валидация.
func RoundToGrain(minutes int) int {
	if minutes <= 0 {
		return minutes
	}
	remainder := minutes % GrainMinutes
	if remainder == 0 {
		return minutes
	}
	if remainder*2 >= GrainMinutes {
		return minutes + (GrainMinutes - remainder)
	}
	return minutes - remainder
}
