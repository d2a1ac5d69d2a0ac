package content

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/content"
	"github.com/travelhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrLikeRateLimited is returned when a client likes the same post again
// within the like window
var ErrLikeRateLimited = shared.NewDomainError("LIKE_RATE_LIMITED", "You already liked this post")

// BlogService manages blog posts and their likes
type BlogService struct {
	repo       content.BlogPostRepository
	limiter    content.LikeLimiter
	likeWindow time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewBlogService creates a new BlogService
func NewBlogService(repo content.BlogPostRepository, limiter content.LikeLimiter, likeWindow time.Duration, logger *zap.Logger) *BlogService {
	if likeWindow <= 0 {
		likeWindow = 24 * time.Hour
	}
	return &BlogService{
		repo:       repo,
		limiter:    limiter,
		likeWindow: likeWindow,
		logger:     logger,
		now:        time.Now,
	}
}

// ListPublished returns the storefront blog
func (s *BlogService) ListPublished(ctx context.Context, tenantID uuid.UUID, filter BlogListFilter) (*shared.Paginated[BlogPostResponse], error) {
	return s.list(ctx, tenantID, true, filter)
}

// ListAll returns drafts and published posts for the admin
func (s *BlogService) ListAll(ctx context.Context, tenantID uuid.UUID, filter BlogListFilter) (*shared.Paginated[BlogPostResponse], error) {
	return s.list(ctx, tenantID, false, filter)
}

func (s *BlogService) list(ctx context.Context, tenantID uuid.UUID, publishedOnly bool, filter BlogListFilter) (*shared.Paginated[BlogPostResponse], error) {
	f := shared.Filter{
		Search:   strings.TrimSpace(filter.Search),
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}.Normalize()

	posts, total, err := s.repo.FindAll(ctx, tenantID, publishedOnly, f)
	if err != nil {
		return nil, err
	}
	items := make([]BlogPostResponse, len(posts))
	for i := range posts {
		items[i] = ToBlogPostResponse(&posts[i])
		if publishedOnly {
			items[i].Body = ""
		}
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetPublished returns a published post by slug
func (s *BlogService) GetPublished(ctx context.Context, tenantID uuid.UUID, slug string) (*BlogPostResponse, error) {
	p, err := s.repo.FindBySlug(ctx, tenantID, slug, true)
	if err != nil {
		return nil, err
	}
	resp := ToBlogPostResponse(p)
	return &resp, nil
}

// Get returns any post of the tenant
func (s *BlogService) Get(ctx context.Context, tenantID, id uuid.UUID) (*BlogPostResponse, error) {
	p, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToBlogPostResponse(p)
	return &resp, nil
}

// Create stores a new post
func (s *BlogService) Create(ctx context.Context, tenantID uuid.UUID, req SaveBlogPostRequest) (*BlogPostResponse, error) {
	p, err := content.NewBlogPost(tenantID, req.Title, req.Slug)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, p, req, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Blog post created",
		zap.String("post_id", p.ID.String()),
		zap.String("slug", p.Slug))
	resp := ToBlogPostResponse(p)
	return &resp, nil
}

// Update replaces a post
func (s *BlogService) Update(ctx context.Context, tenantID, id uuid.UUID, req SaveBlogPostRequest) (*BlogPostResponse, error) {
	p, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Slug != "" && req.Slug != p.Slug {
		if err := p.SetSlug(req.Slug); err != nil {
			return nil, err
		}
	}
	if err := s.apply(ctx, p, req, &p.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToBlogPostResponse(p)
	return &resp, nil
}

// Delete removes a post
func (s *BlogService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, tenantID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tenantID, id)
}

// Like counts one like from clientKey. A client likes a post at most once
// per window; a limiter outage lets the like through.
func (s *BlogService) Like(ctx context.Context, tenantID uuid.UUID, slug, clientKey string) (*LikeResponse, error) {
	p, err := s.repo.FindBySlug(ctx, tenantID, slug, true)
	if err != nil {
		return nil, err
	}

	allowed, err := s.limiter.Allow(ctx, content.LikeKey(tenantID, p.ID, clientKey), s.likeWindow)
	if err != nil {
		s.logger.Warn("Like limiter unavailable",
			zap.String("post_id", p.ID.String()),
			zap.Error(err))
		allowed = true
	}
	if !allowed {
		return nil, ErrLikeRateLimited
	}

	likes, err := s.repo.IncrementLikes(ctx, tenantID, p.ID)
	if err != nil {
		return nil, err
	}
	return &LikeResponse{Likes: likes}, nil
}

func (s *BlogService) apply(ctx context.Context, p *content.BlogPost, req SaveBlogPostRequest, excludeID *uuid.UUID) error {
	if err := p.Update(req.Title, req.Excerpt, req.Body, req.CoverURL); err != nil {
		return err
	}
	p.SetTags(req.Tags)

	taken, err := s.repo.ExistsBySlug(ctx, p.TenantID, p.Slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("SLUG_EXISTS", "A post with this slug already exists")
	}

	if req.Published != nil {
		switch {
		case *req.Published && !p.IsPublished:
			p.Publish(s.now())
		case !*req.Published && p.IsPublished:
			p.Unpublish()
		}
	}
	return nil
}
