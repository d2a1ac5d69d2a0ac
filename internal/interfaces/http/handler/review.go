package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/travelhub/backend/internal/application/identity"
	reviewapp "github.com/travelhub/backend/internal/application/review"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
)

// ReviewService is the part of review.ReviewService the handler uses
type ReviewService interface {
	Create(ctx context.Context, cfg tenant.Config, userID uuid.UUID, authorName string, req reviewapp.CreateReviewRequest) (*reviewapp.ReviewResponse, error)
	ListForTour(ctx context.Context, cfg tenant.Config, tourID uuid.UUID, filter reviewapp.ReviewListFilter) (*shared.Paginated[reviewapp.ReviewResponse], error)
	ListAdmin(ctx context.Context, tenantID uuid.UUID, filter reviewapp.ReviewListFilter) (*shared.Paginated[reviewapp.ReviewResponse], error)
	Approve(ctx context.Context, tenantID, id uuid.UUID) (*reviewapp.ReviewResponse, error)
	Reject(ctx context.Context, tenantID, id uuid.UUID, req reviewapp.RejectReviewRequest) (*reviewapp.ReviewResponse, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// UserDirectory looks up the profile shown next to a review
type UserDirectory interface {
	Me(ctx context.Context, userID uuid.UUID) (*identityapp.UserInfo, error)
}

// ReviewHandler handles tour reviews and their moderation
type ReviewHandler struct {
	BaseHandler
	reviewService ReviewService
	users         UserDirectory
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService ReviewService, users UserDirectory) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, users: users}
}

// ListForTour lists approved reviews
// GET /api/tours/:id/reviews
func (h *ReviewHandler) ListForTour(c *gin.Context) {
	tourID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var filter reviewapp.ReviewListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.reviewService.ListForTour(c.Request.Context(), h.tenantConfig(c), tourID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Create submits a review for moderation
// POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req reviewapp.CreateReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.users.Me(c.Request.Context(), p.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	r, err := h.reviewService.Create(c.Request.Context(), h.tenantConfig(c), p.UserID, authorName(user), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, r)
}

// authorName is the display name, or the mailbox part of the email
func authorName(u *identityapp.UserInfo) string {
	if u.Name != "" {
		return u.Name
	}
	name, _, _ := strings.Cut(u.Email, "@")
	return name
}

// List GET /api/admin/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	var filter reviewapp.ReviewListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.reviewService.ListAdmin(c.Request.Context(), h.tenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondPage(c, page)
}

// Approve publishes a review and refreshes the tour rating
// POST /api/admin/reviews/:id/approve
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	r, err := h.reviewService.Approve(c.Request.Context(), h.tenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Reject POST /api/admin/reviews/:id/reject
func (h *ReviewHandler) Reject(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req reviewapp.RejectReviewRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	r, err := h.reviewService.Reject(c.Request.Context(), h.tenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Delete DELETE /api/admin/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.reviewService.Delete(c.Request.Context(), h.tenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
