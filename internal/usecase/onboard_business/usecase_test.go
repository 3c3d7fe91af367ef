package onboard_business

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	storageBusiness "github.com/m04kA/SMC-TenantService/internal/infra/storage/business"
	storageUser "github.com/m04kA/SMC-TenantService/internal/infra/storage/user"
	parserService "github.com/m04kA/SMC-TenantService/internal/service/parser"
	"github.com/m04kA/SMC-TenantService/internal/service/validation"
	"github.com/m04kA/SMC-TenantService/pkg/ptr"
)

const testDocument = `
version: "1.0.0"
business:
  id: glow-salon
  name: Glow Salon
  description: Hair and beauty
  timezone: Europe/Berlin
  locale: de-DE
  currency: EUR
contact:
  address: Hauptstrasse 1, Berlin
  email: hello@glow-salon.example
  phone: "+49 30 1234567"
  website: https://glow-salon.example
timeSlotDuration: 30
availability:
  - day: monday
    open: "09:00"
    close: "18:00"
  - day: tuesday
    open: "09:00"
    close: "18:00"
  - day: wednesday
    open: "09:00"
    close: "18:00"
  - day: thursday
    open: "09:00"
    close: "18:00"
  - day: friday
    open: "09:00"
    close: "18:00"
  - day: saturday
    enabled: false
  - day: sunday
    enabled: false
availabilityExceptions:
  - date: "2026-12-24"
    closed: true
    reason: Christmas Eve
categories:
  - id: hair
    name: Hair
    services:
      - id: haircut
        name: Haircut
        duration: 30
        price: 3000
bookingLimits:
  advanceBookingDays: 30
  maxSimultaneousBookings: 1
`

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeBusinessRepo struct {
	existing  *domain.Business
	created   []*domain.Business
	createErr error
}

func (r *fakeBusinessRepo) GetBySubdomain(_ context.Context, subdomain string) (*domain.Business, error) {
	if r.existing != nil && r.existing.Subdomain == subdomain {
		return r.existing, nil
	}
	return nil, storageBusiness.ErrBusinessNotFound
}

func (r *fakeBusinessRepo) Create(_ context.Context, b *domain.Business) (*domain.Business, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, b)
	return b, nil
}

type fakeUserRepo struct {
	existing            *domain.User
	created             []*domain.User
	roleUpdates         map[string]domain.UserRole
	verificationUpdates map[string]string // user id -> token hash
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.existing != nil && r.existing.Email == email {
		return r.existing, nil
	}
	return nil, storageUser.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.created = append(r.created, u)
	return u, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id string, role domain.UserRole) error {
	if r.roleUpdates == nil {
		r.roleUpdates = make(map[string]domain.UserRole)
	}
	r.roleUpdates[id] = role
	return nil
}

func (r *fakeUserRepo) UpdateVerification(_ context.Context, id string, tokenHash string, _ time.Time) error {
	if r.verificationUpdates == nil {
		r.verificationUpdates = make(map[string]string)
	}
	r.verificationUpdates[id] = tokenHash
	return nil
}

type fakeOwnershipRepo struct {
	ownedCount int
	created    []*domain.BusinessOwner
}

func (r *fakeOwnershipRepo) Create(_ context.Context, link *domain.BusinessOwner) (*domain.BusinessOwner, error) {
	r.created = append(r.created, link)
	return link, nil
}

func (r *fakeOwnershipRepo) CountByUser(_ context.Context, _ string) (int, error) {
	return r.ownedCount, nil
}

type fakeCatalogRepo struct {
	categories []*domain.CategoryRecord
	services   []*domain.ServiceRecord
	serviceErr error
}

func (r *fakeCatalogRepo) CreateCategory(_ context.Context, c *domain.CategoryRecord) (*domain.CategoryRecord, error) {
	r.categories = append(r.categories, c)
	return c, nil
}

func (r *fakeCatalogRepo) CreateService(_ context.Context, s *domain.ServiceRecord) (*domain.ServiceRecord, error) {
	if r.serviceErr != nil {
		return nil, r.serviceErr
	}
	r.services = append(r.services, s)
	return s, nil
}

type fakeAvailabilityRepo struct {
	records []*domain.AvailabilityRecord
}

func (r *fakeAvailabilityRepo) Create(_ context.Context, rec *domain.AvailabilityRecord) (*domain.AvailabilityRecord, error) {
	r.records = append(r.records, rec)
	return rec, nil
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixture struct {
	usecase      *Usecase
	businessRepo *fakeBusinessRepo
	userRepo     *fakeUserRepo
	ownership    *fakeOwnershipRepo
	catalog      *fakeCatalogRepo
	availability *fakeAvailabilityRepo
	txManager    *fakeTxManager
}

func newFixture() *fixture {
	f := &fixture{
		businessRepo: &fakeBusinessRepo{},
		userRepo:     &fakeUserRepo{},
		ownership:    &fakeOwnershipRepo{},
		catalog:      &fakeCatalogRepo{},
		availability: &fakeAvailabilityRepo{},
		txManager:    &fakeTxManager{},
	}
	tp := &fakeTimeProvider{now: time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)}
	f.usecase = NewUsecase(
		parserService.NewParser(validation.NewValidatorWithTime(tp)),
		f.businessRepo,
		f.userRepo,
		f.ownership,
		f.catalog,
		f.availability,
		f.txManager,
		tp,
		noopLogger{},
		"https://booking.example.com",
	)
	return f
}

func validRequest() Request {
	return Request{
		SourceText: testDocument,
		OwnerEmail: "anna@example.com",
		OwnerName:  ptr.Ptr("Anna Schmidt"),
	}
}

func TestExecute_NewOwner(t *testing.T) {
	f := newFixture()

	res, err := f.usecase.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.True(t, res.Success, "errors: %v", res.Errors)

	assert.Equal(t, "glow-salon", res.Subdomain)
	assert.NotEmpty(t, res.BusinessID)
	assert.NotEmpty(t, res.OwnerID)
	assert.False(t, res.IsExistingOwner)

	// Одноразовые учётные данные отдаются в открытом виде
	assert.NotEmpty(t, res.TemporaryCredential)
	assert.NotEmpty(t, res.VerificationToken)
	assert.Equal(t, "https://booking.example.com/book/glow-salon", res.BookingPageURL)
	assert.Equal(t, "https://booking.example.com/auth/verify-email?token="+res.VerificationToken, res.VerificationURL)

	// Бизнес
	require.Len(t, f.businessRepo.created, 1)
	biz := f.businessRepo.created[0]
	assert.Equal(t, domain.BusinessActive, biz.Status)
	assert.Equal(t, "Europe/Berlin", biz.Timezone)

	// Владелец: роль owner, email в нижнем регистре, в хранилище только хэши
	require.Len(t, f.userRepo.created, 1)
	owner := f.userRepo.created[0]
	assert.Equal(t, domain.RoleOwner, owner.Role)
	assert.Equal(t, "anna@example.com", owner.Email)
	assert.Equal(t, "Anna Schmidt", owner.Name)
	assert.NotEqual(t, res.TemporaryCredential, owner.PasswordHash)
	require.NotNil(t, owner.VerificationTokenHash)
	assert.NotEqual(t, res.VerificationToken, *owner.VerificationTokenHash)
	assert.Equal(t, HashToken(res.VerificationToken), *owner.VerificationTokenHash)

	// Первый бизнес владельца становится primary
	require.Len(t, f.ownership.created, 1)
	assert.True(t, f.ownership.created[0].IsPrimary)

	// Каталог и календарь: 1 категория, 1 услуга, 7 дней + 1 исключение
	assert.Len(t, f.catalog.categories, 1)
	require.Len(t, f.catalog.services, 1)
	assert.Equal(t, "haircut", f.catalog.services[0].Slug)
	assert.Equal(t, 1, f.catalog.services[0].Capacity)
	assert.Len(t, f.availability.records, 8)

	assert.Equal(t, 1, f.txManager.calls)
}

func TestExecute_OwnerNameDerivedFromBusiness(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.OwnerName = nil

	res, err := f.usecase.Execute(context.Background(), req)

	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, f.userRepo.created, 1)
	assert.Equal(t, "Glow Salon Owner", f.userRepo.created[0].Name)
}

func TestExecute_ExistingVerifiedOwner(t *testing.T) {
	f := newFixture()
	f.userRepo.existing = &domain.User{
		ID:            "user-1",
		Email:         "anna@example.com",
		Role:          domain.RoleOwner,
		EmailVerified: true,
	}
	f.ownership.ownedCount = 1

	res, err := f.usecase.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.True(t, res.Success)

	assert.True(t, res.IsExistingOwner)
	assert.Equal(t, "user-1", res.OwnerID)
	assert.Empty(t, res.TemporaryCredential)
	assert.Empty(t, res.VerificationToken)
	assert.Empty(t, res.VerificationURL)

	assert.Empty(t, f.userRepo.created)
	assert.Empty(t, f.userRepo.verificationUpdates)
	// Второй бизнес уже не primary
	require.Len(t, f.ownership.created, 1)
	assert.False(t, f.ownership.created[0].IsPrimary)
}

func TestExecute_ExistingUnverifiedOwnerGetsFreshToken(t *testing.T) {
	f := newFixture()
	f.userRepo.existing = &domain.User{
		ID:            "user-1",
		Email:         "anna@example.com",
		Role:          domain.RoleOwner,
		EmailVerified: false,
	}

	res, err := f.usecase.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.True(t, res.Success)

	assert.True(t, res.IsExistingOwner)
	// Пароль не перевыпускается, токен верификации - перевыпускается
	assert.Empty(t, res.TemporaryCredential)
	assert.NotEmpty(t, res.VerificationToken)
	assert.Equal(t, "https://booking.example.com/auth/verify-email?token="+res.VerificationToken, res.VerificationURL)
	assert.Equal(t, HashToken(res.VerificationToken), f.userRepo.verificationUpdates["user-1"])
}

func TestExecute_CustomerUpgradedToOwner(t *testing.T) {
	f := newFixture()
	f.userRepo.existing = &domain.User{
		ID:    "user-2",
		Email: "anna@example.com",
		Role:  domain.RoleCustomer,
	}

	res, err := f.usecase.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.True(t, res.Success)

	assert.Equal(t, domain.RoleOwner, f.userRepo.roleUpdates["user-2"])
	assert.False(t, res.IsExistingOwner)
	assert.Empty(t, res.TemporaryCredential)
	// Email клиента не был подтверждён - ссылка верификации выдаётся
	assert.NotEmpty(t, res.VerificationURL)
	assert.Equal(t, HashToken(res.VerificationToken), f.userRepo.verificationUpdates["user-2"])

	upgrades := 0
	for _, w := range res.Warnings {
		if strings.Contains(w, "upgraded to owner") {
			upgrades++
		}
	}
	assert.Equal(t, 1, upgrades, "warnings: %v", res.Warnings)
}

func TestExecute_RoleConflict(t *testing.T) {
	f := newFixture()
	f.userRepo.existing = &domain.User{
		ID:    "user-3",
		Email: "anna@example.com",
		Role:  domain.RoleStaff,
	}

	res, err := f.usecase.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrRoleConflict)
	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], `registered under role "staff"`)
	assert.Equal(t, 0, f.txManager.calls)
}

func TestExecute_SubdomainTaken(t *testing.T) {
	f := newFixture()
	f.businessRepo.existing = &domain.Business{
		Subdomain: "glow-salon",
		Status:    domain.BusinessActive,
	}

	res, err := f.usecase.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrSubdomainTaken)
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors, `business.id: subdomain "glow-salon" is already taken`)
	assert.Equal(t, 0, f.txManager.calls)
}

func TestExecute_SuspendedSubdomainIsDistinct(t *testing.T) {
	f := newFixture()
	f.businessRepo.existing = &domain.Business{
		Subdomain: "glow-salon",
		Status:    domain.BusinessSuspended,
	}

	res, err := f.usecase.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrBusinessSuspended)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "suspended")
}

func TestExecute_ConcurrentSubdomainConflictInsideTx(t *testing.T) {
	// Гонку одинаковых поддоменов ловит уникальный индекс уже в транзакции
	f := newFixture()
	f.businessRepo.createErr = storageBusiness.ErrSubdomainTaken

	res, err := f.usecase.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrSubdomainTaken)
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors, `business.id: subdomain "glow-salon" is already taken`)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr string
	}{
		{
			name:    "missing document",
			mutate:  func(req *Request) { req.SourceText = "" },
			wantErr: "sourceText: document is required",
		},
		{
			name:    "missing email",
			mutate:  func(req *Request) { req.OwnerEmail = "" },
			wantErr: "ownerEmail: email is required",
		},
		{
			name:    "bad email",
			mutate:  func(req *Request) { req.OwnerEmail = "not-an-email" },
			wantErr: `ownerEmail: "not-an-email" is not a valid email address`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(&req)

			res, err := f.usecase.Execute(context.Background(), req)

			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, res.Errors, tt.wantErr)
		})
	}
}

func TestExecute_ConfigValidationFailed(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.SourceText = strings.Replace(testDocument, "price: 3000", "price: -5", 1)

	res, err := f.usecase.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrValidationFailed)
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors, "services[haircut].price: must not be negative, got -5")
	assert.Equal(t, 0, f.txManager.calls)
}

func TestExecute_PersistenceFailureIsInternal(t *testing.T) {
	f := newFixture()
	f.catalog.serviceErr = errors.New("connection reset")

	res, err := f.usecase.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrInternal)
	assert.False(t, res.Success)
	assert.Equal(t, []string{"internal error"}, res.Errors)
}

func TestGenerateCredentials(t *testing.T) {
	password1, hash1, err := generateTemporaryPassword()
	require.NoError(t, err)
	password2, _, err := generateTemporaryPassword()
	require.NoError(t, err)

	assert.NotEqual(t, password1, password2)
	assert.NotEqual(t, password1, hash1)

	token, digest, err := generateVerificationToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, digest)
	assert.Equal(t, HashToken(token), digest)
	assert.Len(t, digest, 64) // sha256 в hex
}
