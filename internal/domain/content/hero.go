package content

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
)

// CTA is a hero slide call-to-action button
type CTA struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// HeroSlide is one slide of the storefront hero carousel
type HeroSlide struct {
	shared.TenantAggregateRoot
	Title     string
	Subtitle  string
	ImageURL  string
	CTA       CTA
	SortOrder int
	IsActive  bool
}

// NewHeroSlide creates an active slide
func NewHeroSlide(tenantID uuid.UUID, title, imageURL string) (*HeroSlide, error) {
	s := &HeroSlide{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		IsActive:            true,
	}
	if err := s.Update(title, "", imageURL, CTA{}); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the slide content
func (s *HeroSlide) Update(title, subtitle, imageURL string, cta CTA) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Slide title cannot be empty")
	}
	if strings.TrimSpace(imageURL) == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Slide image is required")
	}
	if (cta.Label == "") != (cta.URL == "") {
		return shared.NewDomainError("INVALID_CTA", "Call to action needs both a label and a URL")
	}
	s.Title = title
	s.Subtitle = strings.TrimSpace(subtitle)
	s.ImageURL = strings.TrimSpace(imageURL)
	s.CTA = cta
	s.IncrementVersion()
	return nil
}

// SetActive shows or hides the slide
func (s *HeroSlide) SetActive(active bool) {
	s.IsActive = active
	s.IncrementVersion()
}

// Reorder assigns SortOrder following the position of each slide ID in order.
// Slides missing from order keep their relative order after the listed ones.
func Reorder(slides []*HeroSlide, order []uuid.UUID) error {
	pos := make(map[uuid.UUID]int, len(order))
	for i, id := range order {
		if _, dup := pos[id]; dup {
			return shared.NewDomainError("INVALID_ORDER", "Slide order contains duplicates")
		}
		pos[id] = i
	}
	known := make(map[uuid.UUID]bool, len(slides))
	for _, s := range slides {
		known[s.ID] = true
	}
	for id := range pos {
		if !known[id] {
			return shared.NewDomainError("INVALID_ORDER", "Slide order references an unknown slide")
		}
	}

	sort.SliceStable(slides, func(i, j int) bool {
		pi, iok := pos[slides[i].ID]
		pj, jok := pos[slides[j].ID]
		switch {
		case iok && jok:
			return pi < pj
		case iok != jok:
			return iok
		default:
			return slides[i].SortOrder < slides[j].SortOrder
		}
	})
	for i, s := range slides {
		if s.SortOrder != i {
			s.SortOrder = i
			s.IncrementVersion()
		}
	}
	return nil
}
