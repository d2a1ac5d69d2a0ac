package tenant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

// ConfigCache stores resolved tenant configs between requests
type ConfigCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TourCounter reports how many tours a tenant owns
type TourCounter interface {
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// TenantService resolves storefront tenants and manages them in the back office
type TenantService struct {
	repo     tenant.TenantRepository
	tours    TourCounter
	cache    ConfigCache
	cacheTTL time.Duration
	fallback tenant.Config
	logger   *zap.Logger
}

// NewTenantService creates a new TenantService. fallback is served when a
// key names no active tenant.
func NewTenantService(
	repo tenant.TenantRepository,
	tours TourCounter,
	cache ConfigCache,
	cacheTTL time.Duration,
	fallback tenant.Config,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		repo:     repo,
		tours:    tours,
		cache:    cache,
		cacheTTL: cacheTTL,
		fallback: fallback,
		logger:   logger,
	}
}

// Resolve returns the config of the tenant a request addresses. Explicit
// hints win; otherwise the host is matched against tenant domains, and the
// default tenant is used last. It never fails.
func (s *TenantService) Resolve(ctx context.Context, hints tenant.Hints) tenant.Config {
	res := tenant.ResolveKey(hints)
	if !res.Explicit() {
		if cfg, ok := s.byHost(ctx, hints.Host); ok {
			return cfg
		}
	}
	return s.GetConfig(ctx, res.Key)
}

// GetConfig returns the config of the tenant with key, or the fallback
// config when the key is unknown or the tenant is inactive
func (s *TenantService) GetConfig(ctx context.Context, key string) tenant.Config {
	key = tenant.NormalizeKey(key)
	if key == "" {
		key = tenant.DefaultKey
	}

	var cfg tenant.Config
	if s.cacheGet(ctx, "key:"+key, &cfg) {
		return cfg
	}

	t, err := s.repo.FindByKey(ctx, key)
	switch {
	case err == nil && t.IsActive:
		cfg = tenant.ConfigFromTenant(t)
	case err == nil || errors.Is(err, shared.ErrNotFound):
		cfg = tenant.FallbackConfig(s.fallback, key, s.defaultTenantID(ctx))
	default:
		// no caching, the next request retries the store
		s.logger.Error("Failed to load tenant, serving fallback", zap.String("key", key), zap.Error(err))
		return tenant.FallbackConfig(s.fallback, key, uuid.Nil)
	}

	s.cacheSet(ctx, "key:"+key, cfg)
	return cfg
}

// Scope decides which catalog a storefront request of cfg reads
func (s *TenantService) Scope(ctx context.Context, cfg tenant.Config) (catalog.Scope, error) {
	if cfg.TenantID == uuid.Nil {
		return catalog.Scope{TenantID: uuid.Nil, PublishedOnly: true}, nil
	}
	own, err := s.tours.CountByTenant(ctx, cfg.TenantID)
	if err != nil {
		return catalog.Scope{}, err
	}
	return catalog.PublicScope(cfg.TenantID, s.defaultTenantID(ctx), own), nil
}

func (s *TenantService) byHost(ctx context.Context, host string) (tenant.Config, bool) {
	domain := tenant.NormalizeDomain(host)
	if domain == "" || domain == "localhost" || domain == "127.0.0.1" {
		return tenant.Config{}, false
	}

	var cfg tenant.Config
	if s.cacheGet(ctx, "host:"+domain, &cfg) {
		return cfg, cfg.TenantID != uuid.Nil
	}

	t, err := s.repo.FindByDomain(ctx, domain)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to match tenant by host", zap.String("host", domain), zap.Error(err))
			return tenant.Config{}, false
		}
		// cache the miss as an empty config
		s.cacheSet(ctx, "host:"+domain, tenant.Config{})
		return tenant.Config{}, false
	}
	if !t.IsActive {
		return tenant.Config{}, false
	}
	cfg = tenant.ConfigFromTenant(t)
	s.cacheSet(ctx, "host:"+domain, cfg)
	return cfg, true
}

func (s *TenantService) defaultTenantID(ctx context.Context) uuid.UUID {
	var id uuid.UUID
	if s.cacheGet(ctx, "default-id", &id) {
		return id
	}
	t, err := s.repo.FindDefault(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to load default tenant", zap.Error(err))
		}
		return uuid.Nil
	}
	s.cacheSet(ctx, "default-id", t.ID)
	return t.ID
}

func (s *TenantService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("Tenant cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

func (s *TenantService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("Tenant cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *TenantService) invalidate(ctx context.Context, t *tenant.Tenant, oldDomain string) {
	if s.cache == nil {
		return
	}
	keys := []string{"key:" + t.Key, "default-id"}
	if t.Domain != "" {
		keys = append(keys, "host:"+t.Domain)
	}
	if oldDomain != "" && oldDomain != t.Domain {
		keys = append(keys, "host:"+oldDomain)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Tenant cache invalidation failed", zap.Error(err))
	}
}

// List returns tenants for the super-admin console
func (s *TenantService) List(ctx context.Context, filter TenantListFilter) (*shared.Paginated[TenantResponse], error) {
	f := shared.Filter{Page: filter.Page, PageSize: filter.PageSize, Search: filter.Search}.Normalize()

	tenants, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]TenantResponse, len(tenants))
	for i := range tenants {
		items[i] = ToTenantResponse(&tenants[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one tenant
func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTenantResponse(t)
	return &resp, nil
}

// Create adds a new brand
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	exists, err := s.repo.ExistsByKey(ctx, tenant.NormalizeKey(req.Key))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tenant key is already taken")
	}

	t, err := tenant.NewTenant(req.Key, req.Name, req.Domain)
	if err != nil {
		return nil, err
	}
	if err := s.applyProfile(t, req.Branding, req.Contact, req.Currency, req.Locale); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	if t.IsDefault {
		if err := s.repo.ClearDefault(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	s.invalidate(ctx, t, "")

	s.logger.Info("Tenant created", zap.String("tenant_id", t.ID.String()), zap.String("key", t.Key))
	resp := ToTenantResponse(t)
	return &resp, nil
}

// Update changes a brand's profile
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldDomain := t.Domain

	if req.Name != nil || req.Domain != nil {
		name, domain := t.Name, t.Domain
		if req.Name != nil {
			name = *req.Name
		}
		if req.Domain != nil {
			domain = *req.Domain
		}
		if err := t.Update(name, domain); err != nil {
			return nil, err
		}
	}
	if err := s.applyProfile(t, req.Branding, req.Contact, req.Currency, req.Locale); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		if *req.IsActive {
			t.Activate()
		} else if err := t.Deactivate(); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, t, oldDomain)
	resp := ToTenantResponse(t)
	return &resp, nil
}

// SetDefault makes a tenant the owner of the shared catalog. Exactly one
// tenant carries the flag afterwards.
func (s *TenantService) SetDefault(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.MarkDefault()
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	if err := s.repo.ClearDefault(ctx, t.ID); err != nil {
		return nil, err
	}
	s.invalidate(ctx, t, "")

	s.logger.Info("Default tenant changed", zap.String("tenant_id", t.ID.String()))
	resp := ToTenantResponse(t)
	return &resp, nil
}

func (s *TenantService) applyProfile(t *tenant.Tenant, b *tenant.Branding, c *tenant.Contact, currency, locale string) error {
	if b != nil {
		if err := t.SetBranding(*b); err != nil {
			return err
		}
	}
	if c != nil {
		t.SetContact(*c)
	}
	if currency != "" || locale != "" {
		return t.SetLocale(currency, locale)
	}
	return nil
}
