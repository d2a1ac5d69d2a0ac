package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"github.com/travelhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByKey finds a tenant by its key
func (r *GormTenantRepository) FindByKey(ctx context.Context, key string) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).Where("key = ?", strings.ToLower(key)).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByDomain finds an active tenant by host name
func (r *GormTenantRepository) FindByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	var model models.TenantModel
	err := r.db.WithContext(ctx).
		Where("domain = ? AND is_active = ?", strings.ToLower(domain), true).
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindDefault finds the default tenant
func (r *GormTenantRepository) FindDefault(ctx context.Context) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists tenants with paging
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.Tenant, error) {
	var tenantModels []models.TenantModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TenantModel{}), filter)
	query = paginate(query, filter, TenantSortFields, "created_at")
	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	tenants := make([]tenant.Tenant, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}
	return tenants, nil
}

// Count counts tenants matching the filter
func (r *GormTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.TenantModel{}), filter).Count(&count).Error
	return count, err
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, t *tenant.Tenant) error {
	return r.db.WithContext(ctx).Save(models.TenantModelFromDomain(t)).Error
}

// ExistsByKey reports whether the key is taken
func (r *GormTenantRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Where("key = ?", strings.ToLower(key)).
		Count(&count).Error
	return count > 0, err
}

// ClearDefault unsets the default flag everywhere except keepID
func (r *GormTenantRepository) ClearDefault(ctx context.Context, keepID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Where("is_default = ? AND id <> ?", true, keepID).
		Update("is_default", false).Error
}

func (r *GormTenantRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(key) LIKE ?", pattern, pattern)
	}
	if active, ok := filter.Filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", active)
	}
	return query
}

var _ tenant.TenantRepository = (*GormTenantRepository)(nil)
