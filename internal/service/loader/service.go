package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	businessRepo "github.com/m04kA/SMC-TenantService/internal/infra/storage/business"
	"github.com/m04kA/SMC-TenantService/internal/service/validation"
	"github.com/m04kA/SMC-TenantService/pkg/ttlcache"
)

// DefaultCacheTTL TTL записей кэша конфигураций
const DefaultCacheTTL = 5 * time.Minute

const (
	subdomainKeyPrefix = "subdomain:"
	businessKeyPrefix  = "business:"
)

// Service загрузчик конфигураций тенантов с in-process кэшем.
// Порядок резолва: кэш -> авторитетный источник -> синтезированный
// fallback из нормализованных записей хранилища.
type Service struct {
	businessRepo     BusinessRepository
	catalogRepo      CatalogRepository
	availabilityRepo AvailabilityRepository
	parser           ConfigParser
	validator        *validation.Validator
	cache            *ttlcache.Cache[*cacheEntry]
	cacheTTL         time.Duration
	timeProvider     TimeProvider
	cacheMetrics     CacheMetrics
	logger           Logger
}

// Option настройка сервиса
type Option func(*Service)

// WithCacheMetrics включает учёт попаданий в кэш
func WithCacheMetrics(m CacheMetrics) Option {
	return func(s *Service) { s.cacheMetrics = m }
}

// WithCacheTTL переопределяет TTL записей кэша
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
		s.cache = ttlcache.New[*cacheEntry](ttl)
	}
}

// WithClock подменяет часы кэша и фильтра исключений (для тестирования)
func WithClock(tp TimeProvider) Option {
	return func(s *Service) {
		s.timeProvider = tp
		s.cache = ttlcache.NewWithClock[*cacheEntry](s.cacheTTL, tp)
	}
}

// NewService создает загрузчик конфигураций
func NewService(
	businessRepo BusinessRepository,
	catalogRepo CatalogRepository,
	availabilityRepo AvailabilityRepository,
	configParser ConfigParser,
	validator *validation.Validator,
	logger Logger,
	opts ...Option,
) *Service {
	s := &Service{
		businessRepo:     businessRepo,
		catalogRepo:      catalogRepo,
		availabilityRepo: availabilityRepo,
		parser:           configParser,
		validator:        validator,
		cache:            ttlcache.New[*cacheEntry](DefaultCacheTTL),
		cacheTTL:         DefaultCacheTTL,
		timeProvider:     &validation.RealTimeProvider{},
		logger:           logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve резолвит тенанта по ключу: поддомен или id бизнеса.
// Попадание в кэш срезает все остальные шаги.
func (s *Service) Resolve(ctx context.Context, tenantKey string) (*Result, error) {
	// 1. Кэш: ключ может быть известен в обеих формах
	if entry, ok := s.cacheLookup(tenantKey); ok {
		return &Result{Config: entry.config, Warnings: entry.warnings, Source: SourceCache}, nil
	}

	// 2. Запись бизнеса: сперва по поддомену, затем по id
	biz, err := s.lookupBusiness(ctx, tenantKey)
	if err != nil {
		return nil, err
	}

	// Неактивный или удалённый бизнес для читающего пути не существует
	if !biz.IsActive() {
		s.logger.Warn("Resolve: business %s is %s, treating as not found", biz.Subdomain, biz.Status)
		return nil, ErrTenantNotFound
	}

	// 3. Авторитетный источник, если задан
	if biz.ConfigSource != nil && *biz.ConfigSource != "" {
		res := s.parser.ParseFile(*biz.ConfigSource)
		if res.Success {
			entry := &cacheEntry{config: res.Config, warnings: res.Warnings, source: SourceAuthoritative}
			s.cacheStore(biz, entry)
			s.logger.Info("Resolve: loaded authoritative config for %s (version %s)",
				biz.Subdomain, res.Config.Version)
			return &Result{Config: entry.config, Warnings: entry.warnings, Source: entry.source}, nil
		}
		s.logger.Warn("Resolve: authoritative config for %s failed to parse, falling back to stored records: %v",
			biz.Subdomain, res.Errors)
	}

	// 4. Синтез fallback-конфига из нормализованных записей
	result, err := s.synthesizeFallback(ctx, biz)
	if err != nil {
		return nil, err
	}

	entry := &cacheEntry{config: result.Config, warnings: result.Warnings, source: SourceFallback}
	s.cacheStore(biz, entry)
	return result, nil
}

// Invalidate сбрасывает кэш одного тенанта (по поддомену или id бизнеса).
// Запись лежит под обоими ключами-псевдонимами; второй ключ известен
// самой записи, поэтому инвалидация по любой форме снимает обе.
// Обязателен к вызову при изменении авторитетного источника.
func (s *Service) Invalidate(tenantKey string) {
	entry, ok := s.cache.Get(subdomainKeyPrefix + tenantKey)
	if !ok {
		entry, ok = s.cache.Get(businessKeyPrefix + tenantKey)
	}
	if ok {
		s.cache.Delete(subdomainKeyPrefix + entry.subdomain)
		s.cache.Delete(businessKeyPrefix + entry.businessID)
	}
	s.cache.Delete(subdomainKeyPrefix + tenantKey)
	s.cache.Delete(businessKeyPrefix + tenantKey)
	s.logger.Info("Invalidate: cache cleared for key %s", tenantKey)
}

// Sweep выметает просроченные записи кэша; возвращает их количество
func (s *Service) Sweep() int {
	return s.cache.Sweep()
}

func (s *Service) cacheLookup(tenantKey string) (*cacheEntry, bool) {
	entry, ok := s.cache.Get(subdomainKeyPrefix + tenantKey)
	if !ok {
		entry, ok = s.cache.Get(businessKeyPrefix + tenantKey)
	}
	if s.cacheMetrics != nil {
		if ok {
			s.cacheMetrics.ObserveCacheLookup("hit")
		} else {
			s.cacheMetrics.ObserveCacheLookup("miss")
		}
	}
	return entry, ok
}

// cacheStore кладёт запись под оба известных ключа
func (s *Service) cacheStore(biz *domain.Business, entry *cacheEntry) {
	entry.subdomain = biz.Subdomain
	entry.businessID = biz.ID
	s.cache.Set(subdomainKeyPrefix+biz.Subdomain, entry)
	s.cache.Set(businessKeyPrefix+biz.ID, entry)
}

func (s *Service) lookupBusiness(ctx context.Context, tenantKey string) (*domain.Business, error) {
	biz, err := s.businessRepo.GetBySubdomain(ctx, tenantKey)
	if err == nil {
		return biz, nil
	}
	if !errors.Is(err, businessRepo.ErrBusinessNotFound) {
		s.logger.Error("Resolve: failed to get business by subdomain %s: %v", tenantKey, err)
		return nil, fmt.Errorf("%w: lookup by subdomain: %v", ErrInternal, err)
	}

	// Ключ может быть id бизнеса
	if _, parseErr := uuid.Parse(tenantKey); parseErr != nil {
		return nil, ErrTenantNotFound
	}
	biz, err = s.businessRepo.GetByID(ctx, tenantKey)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrTenantNotFound
		}
		s.logger.Error("Resolve: failed to get business by id %s: %v", tenantKey, err)
		return nil, fmt.Errorf("%w: lookup by id: %v", ErrInternal, err)
	}
	return biz, nil
}
