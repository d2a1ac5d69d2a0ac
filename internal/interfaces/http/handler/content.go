package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	contentapp "github.com/travelhub/backend/internal/application/content"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/interfaces/http/middleware"
)

// HeroService is the part of content.HeroService the handler uses
type HeroService interface {
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]contentapp.HeroSlideResponse, error)
	ListAll(ctx context.Context, tenantID uuid.UUID) ([]contentapp.HeroSlideResponse, error)
	Create(ctx context.Context, tenantID uuid.UUID, req contentapp.SaveHeroSlideRequest) (*contentapp.HeroSlideResponse, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req contentapp.SaveHeroSlideRequest) (*contentapp.HeroSlideResponse, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Reorder(ctx context.Context, tenantID uuid.UUID, req contentapp.ReorderHeroRequest) ([]contentapp.HeroSlideResponse, error)
}

// BlogService is the part of content.BlogService the handler uses
type BlogService interface {
	ListPublished(ctx context.Context, tenantID uuid.UUID, filter contentapp.BlogListFilter) (*shared.Paginated[contentapp.BlogPostResponse], error)
	ListAll(ctx context.Context, tenantID uuid.UUID, filter contentapp.BlogListFilter) (*shared.Paginated[contentapp.BlogPostResponse], error)
	GetPublished(ctx context.Context, tenantID uuid.UUID, slug string) (*contentapp.BlogPostResponse, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*contentapp.BlogPostResponse, error)
	Create(ctx context.Context, tenantID uuid.UUID, req contentapp.SaveBlogPostRequest) (*contentapp.BlogPostResponse, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req contentapp.SaveBlogPostRequest) (*contentapp.BlogPostResponse, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Like(ctx context.Context, tenantID uuid.UUID, slug, clientKey string) (*contentapp.LikeResponse, error)
}

// HeroHandler serves the homepage hero slides
type HeroHandler struct {
	BaseHandler
	heroService HeroService
}

// NewHeroHandler creates a new HeroHandler
func NewHeroHandler(heroService HeroService) *HeroHandler {
	return &HeroHandler{heroService: heroService}
}

// ListActive GET /api/hero
func (h *HeroHandler) ListActive(c *gin.Context) {
	slides, err := h.heroService.ListActive(c.Request.Context(), h.tenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slides)
}

// List GET /api/admin/hero
func (h *HeroHandler) List(c *gin.Context) {
	slides, err := h.heroService.ListAll(c.Request.Context(), h.tenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slides)
}

// Create POST /api/admin/hero
func (h *HeroHandler) Create(c *gin.Context) {
	var req contentapp.SaveHeroSlideRequest
	if !h.bindJSON(c, &req) {
		return
	}
	slide, err := h.heroService.Create(c.Request.Context(), h.tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, slide)
}

// Update PUT /api/admin/hero/:id
func (h *HeroHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req contentapp.SaveHeroSlideRequest
	if !h.bindJSON(c, &req) {
		return
	}
	slide, err := h.heroService.Update(c.Request.Context(), h.tenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slide)
}

// Delete DELETE /api/admin/hero/:id
func (h *HeroHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.heroService.Delete(c.Request.Context(), h.tenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Reorder sets the sort order from the given id sequence
// PUT /api/admin/hero/order
func (h *HeroHandler) Reorder(c *gin.Context) {
	var req contentapp.ReorderHeroRequest
	if !h.bindJSON(c, &req) {
		return
	}
	slides, err := h.heroService.Reorder(c.Request.Context(), h.tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slides)
}

// BlogHandler serves blog posts and likes
type BlogHandler struct {
	BaseHandler
	blogService BlogService
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogService BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// ListPublished GET /api/blog
func (h *BlogHandler) ListPublished(c *gin.Context) {
	var filter contentapp.BlogListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.blogService.ListPublished(c.Request.Context(), h.tenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// GetPublished GET /api/blog/:slug
func (h *BlogHandler) GetPublished(c *gin.Context) {
	post, err := h.blogService.GetPublished(c.Request.Context(), h.tenantID(c), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// Like counts one like per client per post within the like window.
// Signed-in readers are keyed by user, anonymous ones by IP.
// POST /api/blog/:slug/like
func (h *BlogHandler) Like(c *gin.Context) {
	clientKey := "ip:" + c.ClientIP()
	if p, ok := middleware.GetPrincipal(c); ok {
		clientKey = "user:" + p.UserID.String()
	}
	resp, err := h.blogService.Like(c.Request.Context(), h.tenantID(c), c.Param("slug"), clientKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List GET /api/admin/blog
func (h *BlogHandler) List(c *gin.Context) {
	var filter contentapp.BlogListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.blogService.ListAll(c.Request.Context(), h.tenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Get GET /api/admin/blog/:id
func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	post, err := h.blogService.Get(c.Request.Context(), h.tenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// Create POST /api/admin/blog
func (h *BlogHandler) Create(c *gin.Context) {
	var req contentapp.SaveBlogPostRequest
	if !h.bindJSON(c, &req) {
		return
	}
	post, err := h.blogService.Create(c.Request.Context(), h.tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, post)
}

// Update PUT /api/admin/blog/:id
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req contentapp.SaveBlogPostRequest
	if !h.bindJSON(c, &req) {
		return
	}
	post, err := h.blogService.Update(c.Request.Context(), h.tenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// Delete DELETE /api/admin/blog/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.blogService.Delete(c.Request.Context(), h.tenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
