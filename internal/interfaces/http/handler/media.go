package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/travelhub/backend/internal/application/catalog"
	mediaapp "github.com/travelhub/backend/internal/application/media"
	"github.com/travelhub/backend/internal/domain/tenant"
)

// MediaService is the part of media.MediaService the handler uses
type MediaService interface {
	Presign(ctx context.Context, cfg tenant.Config, req mediaapp.PresignRequest) (*mediaapp.PresignResponse, error)
	Attach(ctx context.Context, tenantID uuid.UUID, req mediaapp.AttachRequest) (*catalogapp.TourResponse, error)
}

// MediaHandler handles bulk tour image uploads. The browser uploads
// straight to object storage with the presigned URLs, then attaches them.
type MediaHandler struct {
	BaseHandler
	mediaService MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Presign POST /api/admin/uploads/presign
func (h *MediaHandler) Presign(c *gin.Context) {
	var req mediaapp.PresignRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.mediaService.Presign(c.Request.Context(), h.tenantConfig(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Attach POST /api/admin/uploads/attach
func (h *MediaHandler) Attach(c *gin.Context) {
	var req mediaapp.AttachRequest
	if !h.bindJSON(c, &req) {
		return
	}
	t, err := h.mediaService.Attach(c.Request.Context(), h.tenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}
