package onboard_business

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	storageBusiness "github.com/m04kA/SMC-TenantService/internal/infra/storage/business"
	storageUser "github.com/m04kA/SMC-TenantService/internal/infra/storage/user"
	"github.com/m04kA/SMC-TenantService/pkg/ptr"
)

// VerificationTokenTTL срок действия токена верификации email
const VerificationTokenTTL = 24 * time.Hour

// Usecase онбординг нового бизнеса: разбор конфигурации, создание
// бизнеса, владельца, каталога и календаря одной транзакцией
type Usecase struct {
	parser           ConfigParser
	businessRepo     BusinessRepository
	userRepo         UserRepository
	ownershipRepo    OwnershipRepository
	catalogRepo      CatalogRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
	baseURL          string
}

func NewUsecase(
	parser ConfigParser,
	businessRepo BusinessRepository,
	userRepo UserRepository,
	ownershipRepo OwnershipRepository,
	catalogRepo CatalogRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
	baseURL string,
) *Usecase {
	return &Usecase{
		parser:           parser,
		businessRepo:     businessRepo,
		userRepo:         userRepo,
		ownershipRepo:    ownershipRepo,
		catalogRepo:      catalogRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		timeProvider:     timeProvider,
		logger:           logger,
		baseURL:          strings.TrimRight(baseURL, "/"),
	}
}

// Execute проводит онбординг бизнеса по документу конфигурации.
// Все записи создаются в одной serializable-транзакции: либо бизнес,
// владелец, каталог и календарь появляются целиком, либо ничего.
func (u *Usecase) Execute(ctx context.Context, req Request) (*Result, error) {
	// 1. Валидация входных данных запроса
	if errs := validateRequest(req); len(errs) > 0 {
		return failure(errs, nil), ErrInvalidInput
	}

	// 2. Разбор и валидация документа конфигурации
	parsed := u.parser.Parse(req.SourceText)
	if !parsed.Success {
		u.logger.Warn("onboard_business: config rejected, %d errors", len(parsed.Errors))
		return failure(parsed.Errors, parsed.Warnings), ErrValidationFailed
	}
	cfg := parsed.Config
	warnings := append([]string(nil), parsed.Warnings...)
	subdomain := cfg.Business.ID

	// 3. Предварительная проверка занятости поддомена
	existing, err := u.businessRepo.GetBySubdomain(ctx, subdomain)
	switch {
	case err == nil:
		if existing.IsSuspended() {
			msg := fmt.Sprintf("business.id: subdomain %q belongs to a suspended business, contact support to restore it", subdomain)
			return failure([]string{msg}, warnings), ErrBusinessSuspended
		}
		msg := fmt.Sprintf("business.id: subdomain %q is already taken", subdomain)
		return failure([]string{msg}, warnings), ErrSubdomainTaken
	case errors.Is(err, storageBusiness.ErrBusinessNotFound):
		// поддомен свободен
	default:
		u.logger.Error("onboard_business: subdomain check failed: %v", err)
		return failure([]string{"internal error"}, warnings), fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Разрешение владельца: новый пользователь, существующий владелец
	// или повышение клиента до владельца
	ownerEmail := strings.ToLower(strings.TrimSpace(req.OwnerEmail))
	owner, err := u.userRepo.GetByEmail(ctx, ownerEmail)
	var (
		isExistingOwner bool
		upgradeCustomer bool
		tempPassword    string
		passwordHash    string
		verifyToken     string
		verifyDigest    string
	)
	switch {
	case err == nil:
		switch {
		case owner.IsOwner():
			isExistingOwner = true
		case owner.CanBeUpgradedToOwner():
			upgradeCustomer = true
			warnings = append(warnings, fmt.Sprintf("owner: existing customer account %s upgraded to owner", ownerEmail))
		default:
			msg := fmt.Sprintf("owner: email %s is registered under role %q and cannot own a business", ownerEmail, owner.Role)
			return failure([]string{msg}, warnings), ErrRoleConflict
		}
	case errors.Is(err, storageUser.ErrUserNotFound):
		tempPassword, passwordHash, err = generateTemporaryPassword()
		if err != nil {
			u.logger.Error("onboard_business: credential generation failed: %v", err)
			return failure([]string{"internal error"}, warnings), fmt.Errorf("%w: %v", ErrInternal, err)
		}
	default:
		u.logger.Error("onboard_business: owner lookup failed: %v", err)
		return failure([]string{"internal error"}, warnings), fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// Токен верификации нужен новому владельцу и любому существующему
	// с неподтверждённым email; существующий токен восстановить нельзя,
	// выпускается новый
	if owner == nil || !owner.EmailVerified {
		verifyToken, verifyDigest, err = generateVerificationToken()
		if err != nil {
			u.logger.Error("onboard_business: token generation failed: %v", err)
			return failure([]string{"internal error"}, warnings), fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// 5. Создание всех записей в одной serializable-транзакции
	var (
		businessID = uuid.NewString()
		ownerID    string
	)
	err = u.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 5.1. Бизнес
		now := u.timeProvider.Now()
		_, err := u.businessRepo.Create(ctx, &domain.Business{
			ID:           businessID,
			Subdomain:    subdomain,
			Name:         cfg.Business.Name,
			Timezone:     cfg.Business.Timezone,
			Locale:       cfg.Business.Locale,
			Currency:     cfg.Business.Currency,
			Status:       domain.BusinessActive,
			ConfigSource: req.ConfigSourcePath,
		})
		if err != nil {
			return err
		}

		// 5.2. Владелец
		switch {
		case owner == nil:
			created, err := u.userRepo.Create(ctx, &domain.User{
				ID:                    uuid.NewString(),
				Email:                 ownerEmail,
				Name:                  ownerName(req, cfg.Business.Name),
				Role:                  domain.RoleOwner,
				PasswordHash:          passwordHash,
				EmailVerified:         false,
				VerificationTokenHash: &verifyDigest,
				VerificationExpiresAt: ptr.Ptr(now.Add(VerificationTokenTTL)),
			})
			if err != nil {
				return err
			}
			ownerID = created.ID
		case upgradeCustomer:
			if err := u.userRepo.UpdateRole(ctx, owner.ID, domain.RoleOwner); err != nil {
				return err
			}
			ownerID = owner.ID
		default:
			ownerID = owner.ID
		}

		// Перевыпуск токена для существующего владельца с
		// неподтверждённым email
		if owner != nil && !owner.EmailVerified {
			if err := u.userRepo.UpdateVerification(ctx, owner.ID, verifyDigest, now.Add(VerificationTokenTTL)); err != nil {
				return err
			}
		}

		// 5.3. Связь владения: первый бизнес пользователя становится primary
		ownedCount, err := u.ownershipRepo.CountByUser(ctx, ownerID)
		if err != nil {
			return err
		}
		if _, err := u.ownershipRepo.Create(ctx, &domain.BusinessOwner{
			BusinessID: businessID,
			UserID:     ownerID,
			IsPrimary:  ownedCount == 0,
		}); err != nil {
			return err
		}

		// 5.4. Каталог: категории и услуги
		if err := u.persistCatalog(ctx, businessID, cfg); err != nil {
			return err
		}

		// 5.5. Календарь: регулярные дни и исключения
		return u.persistAvailability(ctx, businessID, cfg)
	})
	if err != nil {
		// Конкурентный онбординг того же поддомена ловится уникальным
		// индексом внутри транзакции
		if errors.Is(err, storageBusiness.ErrSubdomainTaken) {
			msg := fmt.Sprintf("business.id: subdomain %q is already taken", subdomain)
			return failure([]string{msg}, warnings), ErrSubdomainTaken
		}
		u.logger.Error("onboard_business: transaction failed for %s: %v", subdomain, err)
		return failure([]string{"internal error"}, warnings), fmt.Errorf("%w: %v", ErrInternal, err)
	}

	u.logger.Info("onboard_business: business %s (%s) provisioned, owner %s", subdomain, businessID, ownerID)

	result := &Result{
		Success:         true,
		BusinessID:      businessID,
		OwnerID:         ownerID,
		Subdomain:       subdomain,
		IsExistingOwner: isExistingOwner,
		BookingPageURL:  fmt.Sprintf("%s/book/%s", u.baseURL, subdomain),
		Warnings:        warnings,
	}
	if owner == nil {
		result.TemporaryCredential = tempPassword
	}
	// Ссылка верификации отсутствует только у владельца с уже
	// подтверждённым email
	if verifyToken != "" {
		result.VerificationToken = verifyToken
		result.VerificationURL = fmt.Sprintf("%s/auth/verify-email?token=%s", u.baseURL, verifyToken)
	}
	return result, nil
}

// persistCatalog раскладывает категории и услуги конфигурации в
// нормализованные записи хранилища
func (u *Usecase) persistCatalog(ctx context.Context, businessID string, cfg *domain.TenantConfig) error {
	for _, cat := range cfg.Categories {
		catRec, err := u.catalogRepo.CreateCategory(ctx, &domain.CategoryRecord{
			ID:          uuid.NewString(),
			BusinessID:  businessID,
			Slug:        cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			SortOrder:   cat.SortOrder,
		})
		if err != nil {
			return err
		}
		for _, svc := range cat.Services {
			if _, err := u.catalogRepo.CreateService(ctx, &domain.ServiceRecord{
				ID:                  uuid.NewString(),
				BusinessID:          businessID,
				CategoryID:          catRec.ID,
				Slug:                svc.ID,
				Name:                svc.Name,
				Description:         svc.Description,
				DurationMinutes:     svc.DurationMinutes,
				PriceMinorUnits:     svc.PriceMinorUnits,
				Capacity:            cfg.ServiceCapacity(svc),
				BufferBeforeMinutes: svc.BufferBeforeMinutes,
				BufferAfterMinutes:  svc.BufferAfterMinutes,
				RequiresDeposit:     svc.RequiresDeposit,
				DepositMinorUnits:   svc.DepositMinorUnits,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// persistAvailability сохраняет все 7 регулярных дней и даты-исключения
func (u *Usecase) persistAvailability(ctx context.Context, businessID string, cfg *domain.TenantConfig) error {
	for _, day := range cfg.Availability {
		d := day.Day
		if _, err := u.availabilityRepo.Create(ctx, &domain.AvailabilityRecord{
			ID:         uuid.NewString(),
			BusinessID: businessID,
			Day:        &d,
			Enabled:    day.Enabled,
			Slots:      day.Slots,
		}); err != nil {
			return err
		}
	}
	for _, exc := range cfg.AvailabilityExceptions {
		date := exc.Date
		if _, err := u.availabilityRepo.Create(ctx, &domain.AvailabilityRecord{
			ID:            uuid.NewString(),
			BusinessID:    businessID,
			ExceptionDate: &date,
			Enabled:       !exc.Closed,
			Slots:         exc.Slots,
		}); err != nil {
			return err
		}
	}
	return nil
}

// ownerName выбирает отображаемое имя владельца: явное из запроса
// или производное от названия бизнеса
func ownerName(req Request, businessName string) string {
	if req.OwnerName != nil && strings.TrimSpace(*req.OwnerName) != "" {
		return strings.TrimSpace(*req.OwnerName)
	}
	return businessName + " Owner"
}
