package models

import (
	"time"

	"github.com/travelhub/backend/internal/domain/content"
)

// HeroSlideModel is the persistence model for a hero carousel slide
type HeroSlideModel struct {
	TenantAggregateModel
	Title     string `gorm:"type:varchar(200);not null"`
	Subtitle  string `gorm:"type:varchar(500)"`
	ImageURL  string `gorm:"type:varchar(500);not null"`
	CTALabel  string `gorm:"column:cta_label;type:varchar(100)"`
	CTAURL    string `gorm:"column:cta_url;type:varchar(500)"`
	SortOrder int    `gorm:"not null;default:0"`
	IsActive  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (HeroSlideModel) TableName() string {
	return "hero_slides"
}

// ToDomain converts the persistence model to a domain HeroSlide
func (m *HeroSlideModel) ToDomain() *content.HeroSlide {
	return &content.HeroSlide{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Title:               m.Title,
		Subtitle:            m.Subtitle,
		ImageURL:            m.ImageURL,
		CTA:                 content.CTA{Label: m.CTALabel, URL: m.CTAURL},
		SortOrder:           m.SortOrder,
		IsActive:            m.IsActive,
	}
}

// HeroSlideModelFromDomain creates a persistence model from a domain HeroSlide
func HeroSlideModelFromDomain(s *content.HeroSlide) *HeroSlideModel {
	m := &HeroSlideModel{
		Title:     s.Title,
		Subtitle:  s.Subtitle,
		ImageURL:  s.ImageURL,
		CTALabel:  s.CTA.Label,
		CTAURL:    s.CTA.URL,
		SortOrder: s.SortOrder,
		IsActive:  s.IsActive,
	}
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	return m
}

// BlogPostModel is the persistence model for a blog post
type BlogPostModel struct {
	TenantAggregateModel
	Slug        string   `gorm:"type:varchar(120);not null;index"`
	Title       string   `gorm:"type:varchar(200);not null"`
	Excerpt     string   `gorm:"type:varchar(500)"`
	Body        string   `gorm:"type:text"`
	CoverURL    string   `gorm:"type:varchar(500)"`
	Tags        []string `gorm:"type:jsonb;serializer:json"`
	IsPublished bool     `gorm:"not null;default:false;index"`
	PublishedAt *time.Time
	Likes       int64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (BlogPostModel) TableName() string {
	return "blog_posts"
}

// ToDomain converts the persistence model to a domain BlogPost
func (m *BlogPostModel) ToDomain() *content.BlogPost {
	tags := m.Tags
	if tags == nil {
		tags = make([]string, 0)
	}
	return &content.BlogPost{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Slug:                m.Slug,
		Title:               m.Title,
		Excerpt:             m.Excerpt,
		Body:                m.Body,
		CoverURL:            m.CoverURL,
		Tags:                tags,
		IsPublished:         m.IsPublished,
		PublishedAt:         m.PublishedAt,
		Likes:               m.Likes,
	}
}

// BlogPostModelFromDomain creates a persistence model from a domain BlogPost
func BlogPostModelFromDomain(p *content.BlogPost) *BlogPostModel {
	m := &BlogPostModel{
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Body:        p.Body,
		CoverURL:    p.CoverURL,
		Tags:        p.Tags,
		IsPublished: p.IsPublished,
		PublishedAt: p.PublishedAt,
		Likes:       p.Likes,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}
