package domain

import "github.com/m04kA/SMC-TenantService/pkg/types"

// Weekday день недели в нижнем регистре ("monday" .. "sunday")
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays все дни недели в каноническом порядке
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid возвращает true для известного дня недели
func (w Weekday) IsValid() bool {
	for _, d := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// RefundPolicy политика возврата при отмене
type RefundPolicy string

const (
	RefundFull    RefundPolicy = "full"
	RefundPartial RefundPolicy = "partial"
	RefundNone    RefundPolicy = "none"
)

// IsValid возвращает true для известной политики возврата
func (p RefundPolicy) IsValid() bool {
	return p == RefundFull || p == RefundPartial || p == RefundNone
}

// TenantConfig корневой value object конфигурации тенанта.
// Неизменяем после валидации: новая активация создаёт новую версию,
// а не мутирует существующую.
type TenantConfig struct {
	Version                string
	Business               BusinessInfo
	Contact                ContactInfo
	Branding               Branding
	TimeSlotDuration       int // display granularity, minutes
	Availability           []DailyAvailability // ровно 7, по одному на день недели
	AvailabilityExceptions []AvailabilityException
	Categories             []Category
	BookingRequirements    BookingRequirements
	BookingLimits          BookingLimits
	CancellationPolicy     CancellationPolicy
	Notifications          NotificationPreferences
	Features               Features
	Metadata               map[string]string
}

// BusinessInfo данные бизнеса внутри конфигурации
type BusinessInfo struct {
	ID          string // slug, совпадает с поддоменом тенанта
	Name        string
	Description *string
	Timezone    string // IANA
	Locale      string
	Currency    string // ISO 4217
}

// ContactInfo контактные данные
type ContactInfo struct {
	Address   string
	Email     string
	Phone     string
	Website   *string
	Social    map[string]string
	Latitude  *float64
	Longitude *float64
}

// Branding брендинг страницы бронирования
type Branding struct {
	PrimaryColor   string // hex
	SecondaryColor string // hex
	LogoURL        *string
	CoverImageURL  *string
}

// TimeSlot непрерывный открытый интервал внутри дня
type TimeSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// DurationMinutes длительность интервала в минутах
func (s TimeSlot) DurationMinutes() int {
	start, err1 := s.Start.Minutes()
	end, err2 := s.End.Minutes()
	if err1 != nil || err2 != nil || end < start {
		return 0
	}
	return end - start
}

// DailyAvailability расписание одного дня недели в канонической форме.
// Легаси-формат (одна пара open/close) нормализуется валидатором в Slots.
type DailyAvailability struct {
	Day     Weekday
	Enabled bool
	Slots   []TimeSlot
}

// TotalMinutes суммарное открытое время за день
func (d DailyAvailability) TotalMinutes() int {
	total := 0
	for _, s := range d.Slots {
		total += s.DurationMinutes()
	}
	return total
}

// AvailabilityException переопределение расписания на конкретную дату
type AvailabilityException struct {
	Date   string // YYYY-MM-DD
	Closed bool
	Slots  []TimeSlot // используется, когда Closed=false
	Reason *string
}

// Category упорядоченная группа услуг
type Category struct {
	ID          string // slug, уникален в рамках всего документа
	Name        string
	Description *string
	SortOrder   int
	Services    []Service
}

// Service услуга внутри категории
type Service struct {
	ID                  string // slug, уникален в рамках всего документа
	Name                string
	Description         *string
	DurationMinutes     int // кратно грейну после валидации
	PriceMinorUnits     int // минорные единицы валюты, >= 0
	Capacity            *int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	RequiresDeposit     bool
	DepositMinorUnits   *int // обязателен и <= цены при RequiresDeposit
}

// BookingRequirements требования к клиенту при бронировании
type BookingRequirements struct {
	RequireName              bool
	RequirePhone             bool
	RequireEmailVerification bool
	AllowGuestBooking        bool
}

// BookingLimits числовые ограничения бронирования
type BookingLimits struct {
	AdvanceBookingDays         int // 0..365
	MinNoticeHours             int
	MaxBookingsPerCustomerDay  *int
	MaxSimultaneousBookings    int
}

// CancellationPolicy политика отмены
type CancellationPolicy struct {
	AllowCancellation bool
	DeadlineHours     int // 0..168
	RefundPolicy      RefundPolicy
	RefundPercentage  *int // обязателен при RefundPartial
}

// NotificationPreferences настройки уведомлений
type NotificationPreferences struct {
	EmailEnabled        bool
	SMSEnabled          bool
	ReminderHoursBefore *int
}

// Features флаги функциональности тенанта
type Features struct {
	OnlinePayments  bool
	CustomerReviews bool
	Waitlist        bool
}

// AllServices возвращает все услуги конфигурации в порядке категорий
func (c *TenantConfig) AllServices() []Service {
	var services []Service
	for _, cat := range c.Categories {
		services = append(services, cat.Services...)
	}
	return services
}

// ServiceByID ищет услугу по id во всех категориях
func (c *TenantConfig) ServiceByID(id string) (Service, bool) {
	for _, cat := range c.Categories {
		for _, svc := range cat.Services {
			if svc.ID == id {
				return svc, true
			}
		}
	}
	return Service{}, false
}

// AvailabilityFor возвращает расписание указанного дня недели
func (c *TenantConfig) AvailabilityFor(day Weekday) (DailyAvailability, bool) {
	for _, d := range c.Availability {
		if d.Day == day {
			return d, true
		}
	}
	return DailyAvailability{}, false
}

// AllDaysDisabled возвращает true, когда все 7 дней выключены
func (c *TenantConfig) AllDaysDisabled() bool {
	for _, d := range c.Availability {
		if d.Enabled {
			return false
		}
	}
	return len(c.Availability) > 0
}

// ServiceCapacity возвращает вместимость услуги с учётом фолбэка
// на MaxSimultaneousBookings уровня бизнеса
func (c *TenantConfig) ServiceCapacity(svc Service) int {
	if svc.Capacity != nil {
		return *svc.Capacity
	}
	return c.BookingLimits.MaxSimultaneousBookings
}
