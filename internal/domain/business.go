package domain

import "time"

// BusinessStatus статус бизнеса в системе
type BusinessStatus string

const (
	BusinessActive    BusinessStatus = "active"
	BusinessSuspended BusinessStatus = "suspended"
	BusinessDeleted   BusinessStatus = "deleted"
)

// Business запись бизнеса. Уникально идентифицируется поддоменом.
// Создаётся один раз при онбординге; последующие изменения конфигурации
// мутируют каталог и расписание под тем же id.
type Business struct {
	ID           string // uuid
	Subdomain    string // уникальный ключ тенанта
	Name         string
	Timezone     string
	Locale       string
	Currency     string
	Status       BusinessStatus
	ConfigSource *string // путь к авторитетному конфигу, NULL = только записи в БД
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive возвращает true для активного (обслуживаемого) бизнеса
func (b *Business) IsActive() bool {
	return b.Status == BusinessActive
}

// IsSuspended возвращает true для приостановленного бизнеса
func (b *Business) IsSuspended() bool {
	return b.Status == BusinessSuspended
}

// BusinessOwner связь владельца с бизнесом.
// У владельца ровно один primary-бизнес: первый созданный.
type BusinessOwner struct {
	BusinessID string
	UserID     string
	IsPrimary  bool
	CreatedAt  time.Time
}

// CategoryRecord нормализованная запись категории в хранилище
type CategoryRecord struct {
	ID          string // uuid
	BusinessID  string
	Slug        string
	Name        string
	Description *string
	SortOrder   int
}

// ServiceRecord нормализованная запись услуги в хранилище
type ServiceRecord struct {
	ID                  string // uuid
	BusinessID          string
	CategoryID          string
	Slug                string
	Name                string
	Description         *string
	DurationMinutes     int
	PriceMinorUnits     int
	Capacity            int // уже с учётом фолбэка на лимит бизнеса
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	RequiresDeposit     bool
	DepositMinorUnits   *int
}

// AvailabilityRecord строка календаря: либо день недели, либо дата-исключение
type AvailabilityRecord struct {
	ID            string // uuid
	BusinessID    string
	Day           *Weekday // NULL для исключений
	ExceptionDate *string  // YYYY-MM-DD, NULL для регулярных дней
	Enabled       bool
	Slots         []TimeSlot
}
