package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/content"
)

// CTARequest is a slide button
type CTARequest struct {
	Label string `json:"label" binding:"max=60"`
	URL   string `json:"url" binding:"max=500"`
}

// SaveHeroSlideRequest creates or replaces a hero slide
type SaveHeroSlideRequest struct {
	Title    string     `json:"title" binding:"required,max=200"`
	Subtitle string     `json:"subtitle" binding:"max=300"`
	ImageURL string     `json:"image_url" binding:"required,url"`
	CTA      CTARequest `json:"cta"`
	IsActive *bool      `json:"is_active"`
}

// ReorderHeroRequest lists slide IDs in display order
type ReorderHeroRequest struct {
	Order []uuid.UUID `json:"order" binding:"required,min=1"`
}

// HeroSlideResponse represents a hero slide in API responses
type HeroSlideResponse struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Subtitle  string      `json:"subtitle,omitempty"`
	ImageURL  string      `json:"image_url"`
	CTA       content.CTA `json:"cta"`
	SortOrder int         `json:"sort_order"`
	IsActive  bool        `json:"is_active"`
}

// ToHeroSlideResponse converts a domain HeroSlide to HeroSlideResponse
func ToHeroSlideResponse(s *content.HeroSlide) HeroSlideResponse {
	return HeroSlideResponse{
		ID:        s.ID,
		Title:     s.Title,
		Subtitle:  s.Subtitle,
		ImageURL:  s.ImageURL,
		CTA:       s.CTA,
		SortOrder: s.SortOrder,
		IsActive:  s.IsActive,
	}
}

func toHeroSlideResponses(slides []*content.HeroSlide) []HeroSlideResponse {
	out := make([]HeroSlideResponse, len(slides))
	for i, s := range slides {
		out[i] = ToHeroSlideResponse(s)
	}
	return out
}

// SaveBlogPostRequest creates or replaces a blog post
type SaveBlogPostRequest struct {
	Title     string   `json:"title" binding:"required,max=200"`
	Slug      string   `json:"slug" binding:"max=200"`
	Excerpt   string   `json:"excerpt" binding:"max=500"`
	Body      string   `json:"body"`
	CoverURL  string   `json:"cover_url" binding:"omitempty,url"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"is_published"`
}

// BlogListFilter represents paging for blog lists
type BlogListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BlogPostResponse represents a blog post in API responses
type BlogPostResponse struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Likes       int64      `json:"likes"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToBlogPostResponse converts a domain BlogPost to BlogPostResponse
func ToBlogPostResponse(p *content.BlogPost) BlogPostResponse {
	return BlogPostResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Body:        p.Body,
		CoverURL:    p.CoverURL,
		Tags:        p.Tags,
		IsPublished: p.IsPublished,
		PublishedAt: p.PublishedAt,
		Likes:       p.Likes,
		UpdatedAt:   p.UpdatedAt,
	}
}

// LikeResponse reports a post's like count after a like
type LikeResponse struct {
	Likes int64 `json:"likes"`
}
