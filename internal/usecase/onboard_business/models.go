package onboard_business

// Request запрос на онбординг нового бизнеса
type Request struct {
	SourceText       string  // YAML-документ конфигурации тенанта
	OwnerEmail       string  // email владельца
	OwnerName        *string // имя владельца (опционально)
	ConfigSourcePath *string // путь к авторитетному источнику (опционально)
}

// Result результат онбординга. Errors блокируют, Warnings нет.
// TemporaryCredential и VerificationToken возвращаются в открытом виде
// ровно один раз - для внеполосной доставки; в хранилище попадают
// только их хэши.
type Result struct {
	Success             bool     `json:"success"`
	BusinessID          string   `json:"businessId,omitempty"`
	OwnerID             string   `json:"ownerId,omitempty"`
	Subdomain           string   `json:"subdomain,omitempty"`
	TemporaryCredential string   `json:"temporaryCredential,omitempty"`
	VerificationToken   string   `json:"verificationToken,omitempty"`
	VerificationURL     string   `json:"verificationUrl,omitempty"`
	BookingPageURL      string   `json:"bookingPageUrl,omitempty"`
	IsExistingOwner     bool     `json:"isExistingOwner"`
	Errors              []string `json:"errors,omitempty"`
	Warnings            []string `json:"warnings,omitempty"`
}

func failure(errs []string, warnings []string) *Result {
	return &Result{Success: false, Errors: errs, Warnings: warnings}
}
