package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/content"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormHeroSlideRepository implements HeroSlideRepository using GORM
type GormHeroSlideRepository struct {
	db *gorm.DB
}

// NewGormHeroSlideRepository creates a new GormHeroSlideRepository
func NewGormHeroSlideRepository(db *gorm.DB) *GormHeroSlideRepository {
	return &GormHeroSlideRepository{db: db}
}

// FindByID finds a slide owned by tenantID
func (r *GormHeroSlideRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*content.HeroSlide, error) {
	var model models.HeroSlideModel
	if err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByTenant lists slides in display order
func (r *GormHeroSlideRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*content.HeroSlide, error) {
	var slideModels []models.HeroSlideModel
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("sort_order ASC, created_at ASC").Find(&slideModels).Error; err != nil {
		return nil, err
	}
	slides := make([]*content.HeroSlide, len(slideModels))
	for i := range slideModels {
		slides[i] = slideModels[i].ToDomain()
	}
	return slides, nil
}

// Save creates or updates a slide
func (r *GormHeroSlideRepository) Save(ctx context.Context, s *content.HeroSlide) error {
	return r.db.WithContext(ctx).Save(models.HeroSlideModelFromDomain(s)).Error
}

// SaveAll stores a reordered set of slides in one transaction
func (r *GormHeroSlideRepository) SaveAll(ctx context.Context, slides []*content.HeroSlide) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range slides {
			if err := tx.Save(models.HeroSlideModelFromDomain(s)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a slide
func (r *GormHeroSlideRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.HeroSlideModel{}))
}

var _ content.HeroSlideRepository = (*GormHeroSlideRepository)(nil)

// GormBlogPostRepository implements BlogPostRepository using GORM
type GormBlogPostRepository struct {
	db *gorm.DB
}

// NewGormBlogPostRepository creates a new GormBlogPostRepository
func NewGormBlogPostRepository(db *gorm.DB) *GormBlogPostRepository {
	return &GormBlogPostRepository{db: db}
}

// FindByID finds a post owned by tenantID
func (r *GormBlogPostRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*content.BlogPost, error) {
	var model models.BlogPostModel
	if err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a post by slug
func (r *GormBlogPostRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string, publishedOnly bool) (*content.BlogPost, error) {
	var model models.BlogPostModel
	query := r.db.WithContext(ctx).Where("tenant_id = ? AND slug = ?", tenantID, slug)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists posts with paging and the total count
func (r *GormBlogPostRepository) FindAll(ctx context.Context, tenantID uuid.UUID, publishedOnly bool, filter shared.Filter) ([]content.BlogPost, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BlogPostModel{}).Where("tenant_id = ?", tenantID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var postModels []models.BlogPostModel
	if err := paginate(query, filter, BlogSortFields, "published_at").Find(&postModels).Error; err != nil {
		return nil, 0, err
	}
	posts := make([]content.BlogPost, len(postModels))
	for i, model := range postModels {
		posts[i] = *model.ToDomain()
	}
	return posts, total, nil
}

// ExistsBySlug reports whether another post uses slug
func (r *GormBlogPostRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BlogPostModel{}).Where("tenant_id = ? AND slug = ?", tenantID, slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Save creates or updates a post
func (r *GormBlogPostRepository) Save(ctx context.Context, p *content.BlogPost) error {
	return r.db.WithContext(ctx).Save(models.BlogPostModelFromDomain(p)).Error
}

// Delete removes a post
func (r *GormBlogPostRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.BlogPostModel{}))
}

// IncrementLikes adds one like and returns the new total
func (r *GormBlogPostRepository) IncrementLikes(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	var likes int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.BlogPostModel{}).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			UpdateColumn("likes", gorm.Expr("likes + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Model(&models.BlogPostModel{}).Select("likes").Where("id = ?", id).Scan(&likes).Error
	})
	return likes, err
}

var _ content.BlogPostRepository = (*GormBlogPostRepository)(nil)
