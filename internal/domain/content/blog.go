package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/shared"
)

// BlogPost is a storefront article
type BlogPost struct {
	shared.TenantAggregateRoot
	Slug        string
	Title       string
	Excerpt     string
	Body        string
	CoverURL    string
	Tags        []string
	IsPublished bool
	PublishedAt *time.Time
	Likes       int64
}

// NewBlogPost creates a draft post. The slug is derived from the title when empty.
func NewBlogPost(tenantID uuid.UUID, title, slug string) (*BlogPost, error) {
	p := &BlogPost{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Tags:                make([]string, 0),
	}
	if err := p.Update(title, "", "", ""); err != nil {
		return nil, err
	}
	if err := p.SetSlug(slug); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the post content
func (p *BlogPost) Update(title, excerpt, body, coverURL string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Post title cannot be empty")
	}
	if len(excerpt) > 500 {
		return shared.NewDomainError("INVALID_EXCERPT", "Excerpt cannot exceed 500 characters")
	}
	p.Title = title
	p.Excerpt = strings.TrimSpace(excerpt)
	p.Body = body
	p.CoverURL = strings.TrimSpace(coverURL)
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetSlug sets the URL slug, generating one from the title when slug is empty
func (p *BlogPost) SetSlug(slug string) error {
	if strings.TrimSpace(slug) == "" {
		slug = catalog.Slugify(p.Title)
	}
	if !catalog.IsValidSlug(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug may only contain lowercase letters, digits and hyphens")
	}
	p.Slug = slug
	return nil
}

// SetTags replaces the tags, dropping blanks and duplicates
func (p *BlogPost) SetTags(tags []string) {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	p.Tags = out
}

// Publish makes the post public
func (p *BlogPost) Publish(now time.Time) {
	p.IsPublished = true
	if p.PublishedAt == nil {
		p.PublishedAt = &now
	}
	p.IncrementVersion()
}

// Unpublish hides the post
func (p *BlogPost) Unpublish() {
	p.IsPublished = false
	p.IncrementVersion()
}
