// Package seo renders robots.txt and sitemap.xml for a storefront.
package seo

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/catalog"
	"github.com/travelhub/backend/internal/domain/content"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

const (
	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	// maxSitemapURLs is the protocol limit for a single sitemap file
	maxSitemapURLs = 50000
	lastmodLayout  = "2006-01-02"
)

// Scoper decides which catalog a storefront tenant reads
type Scoper interface {
	Scope(ctx context.Context, cfg tenant.Config) (catalog.Scope, error)
}

// TourLister pages through the tours of a scope
type TourLister interface {
	FindInScope(ctx context.Context, scope catalog.Scope, filter shared.Filter) ([]catalog.Tour, error)
}

// DestinationLister lists a tenant's destinations
type DestinationLister interface {
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]catalog.Destination, error)
}

// PostLister pages through a tenant's blog posts
type PostLister interface {
	FindAll(ctx context.Context, tenantID uuid.UUID, publishedOnly bool, filter shared.Filter) ([]content.BlogPost, int64, error)
}

// SiteOptions holds the defaults used when a tenant has no domain
type SiteOptions struct {
	BaseURL       string
	DisallowPaths []string
}

// SEOService builds crawler documents per tenant
type SEOService struct {
	tourRepo        TourLister
	destinationRepo DestinationLister
	blogRepo        PostLister
	scoper          Scoper
	opts            SiteOptions
	logger          *zap.Logger
	now             func() time.Time
}

// NewSEOService creates a new SEOService
func NewSEOService(
	tourRepo TourLister,
	destinationRepo DestinationLister,
	blogRepo PostLister,
	scoper Scoper,
	opts SiteOptions,
	logger *zap.Logger,
) *SEOService {
	if len(opts.DisallowPaths) == 0 {
		opts.DisallowPaths = []string{"/admin", "/api"}
	}
	return &SEOService{
		tourRepo:        tourRepo,
		destinationRepo: destinationRepo,
		blogRepo:        blogRepo,
		scoper:          scoper,
		opts:            opts,
		logger:          logger,
		now:             time.Now,
	}
}

// BaseURL is https://<domain> of the tenant, else the configured site URL
func (s *SEOService) BaseURL(cfg tenant.Config) string {
	if d := strings.TrimSpace(cfg.Domain); d != "" {
		d = strings.TrimPrefix(strings.TrimPrefix(d, "https://"), "http://")
		return "https://" + strings.TrimRight(d, "/")
	}
	return strings.TrimRight(s.opts.BaseURL, "/")
}

// Robots renders robots.txt
func (s *SEOService) Robots(cfg tenant.Config) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, p := range s.opts.DisallowPaths {
		b.WriteString("Disallow: " + p + "\n")
	}
	if base := s.BaseURL(cfg); base != "" {
		b.WriteString("\nSitemap: " + base + "/sitemap.xml\n")
	}
	return b.String()
}

// URL is one sitemap entry
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// URLSet is the sitemap document
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Sitemap lists the storefront home, the tour list, every tour in the
// storefront's catalog, destinations and published blog posts
func (s *SEOService) Sitemap(ctx context.Context, cfg tenant.Config) ([]byte, error) {
	set, err := s.BuildSitemap(ctx, cfg)
	if err != nil {
		return nil, err
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

// BuildSitemap collects the sitemap entries of cfg
func (s *SEOService) BuildSitemap(ctx context.Context, cfg tenant.Config) (*URLSet, error) {
	base := s.BaseURL(cfg)
	today := s.now().UTC().Format(lastmodLayout)
	set := &URLSet{XMLNS: sitemapNamespace}
	set.URLs = append(set.URLs,
		URL{Loc: base + "/", LastMod: today, ChangeFreq: "daily", Priority: "1.0"},
		URL{Loc: base + "/tours", LastMod: today, ChangeFreq: "daily", Priority: "0.9"},
		URL{Loc: base + "/blog", LastMod: today, ChangeFreq: "weekly", Priority: "0.6"},
	)

	scope, err := s.scoper.Scope(ctx, cfg)
	if err != nil {
		return nil, err
	}
	scope.PublishedOnly = true

	err = s.eachPage(func(f shared.Filter) (int, error) {
		tours, err := s.tourRepo.FindInScope(ctx, scope, f)
		if err != nil {
			return 0, err
		}
		for i := range tours {
			set.URLs = append(set.URLs, URL{
				Loc:        base + "/tours/" + tours[i].Slug,
				LastMod:    lastmod(tours[i].UpdatedAt, today),
				ChangeFreq: "weekly",
				Priority:   "0.8",
			})
		}
		return len(tours), nil
	})
	if err != nil {
		return nil, err
	}

	destinations, err := s.destinationRepo.FindByTenant(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	for i := range destinations {
		set.URLs = append(set.URLs, URL{
			Loc:        base + "/destinations/" + destinations[i].Slug,
			LastMod:    lastmod(destinations[i].UpdatedAt, today),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	err = s.eachPage(func(f shared.Filter) (int, error) {
		posts, _, err := s.blogRepo.FindAll(ctx, cfg.TenantID, true, f)
		if err != nil {
			return 0, err
		}
		for i := range posts {
			set.URLs = append(set.URLs, URL{
				Loc:        base + "/blog/" + posts[i].Slug,
				LastMod:    lastmod(posts[i].UpdatedAt, today),
				ChangeFreq: "monthly",
				Priority:   "0.5",
			})
		}
		return len(posts), nil
	})
	if err != nil {
		return nil, err
	}

	if len(set.URLs) > maxSitemapURLs {
		s.logger.Warn("Sitemap truncated",
			zap.String("tenant", cfg.Key),
			zap.Int("urls", len(set.URLs)))
		set.URLs = set.URLs[:maxSitemapURLs]
	}
	return set, nil
}

// eachPage calls fetch with consecutive full pages until a short page
func (s *SEOService) eachPage(fetch func(shared.Filter) (int, error)) error {
	for page := 1; page*shared.MaxPageSize <= maxSitemapURLs+shared.MaxPageSize; page++ {
		f := shared.Filter{Page: page, PageSize: shared.MaxPageSize, OrderBy: "created_at", OrderDir: "asc"}.Normalize()
		n, err := fetch(f)
		if err != nil {
			return err
		}
		if n < f.PageSize {
			return nil
		}
	}
	return nil
}

func lastmod(t time.Time, fallback string) string {
	if t.IsZero() {
		return fallback
	}
	return t.UTC().Format(lastmodLayout)
}
