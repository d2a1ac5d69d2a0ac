package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/travelhub/backend/internal/domain/tenant"
)

// SEOService is the part of seo.SEOService the handler uses
type SEOService interface {
	Robots(cfg tenant.Config) string
	Sitemap(ctx context.Context, cfg tenant.Config) ([]byte, error)
}

// SEOHandler serves robots.txt and sitemap.xml for the resolved tenant
type SEOHandler struct {
	BaseHandler
	seoService SEOService
}

// NewSEOHandler creates a new SEOHandler
func NewSEOHandler(seoService SEOService) *SEOHandler {
	return &SEOHandler{seoService: seoService}
}

// Robots GET /robots.txt
func (h *SEOHandler) Robots(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.String(http.StatusOK, h.seoService.Robots(h.tenantConfig(c)))
}

// Sitemap GET /sitemap.xml
func (h *SEOHandler) Sitemap(c *gin.Context) {
	body, err := h.seoService.Sitemap(c.Request.Context(), h.tenantConfig(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
