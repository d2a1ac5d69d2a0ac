// Package media issues upload URLs for tour images and attaches uploaded
// images to tours.
package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/travelhub/backend/internal/application/catalog"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

// MaxFilesPerRequest caps a bulk upload
const MaxFilesPerRequest = 20

// allowedContentTypes maps accepted image types to their object key extension
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/avif": ".avif",
}

// ObjectStorage issues direct-upload URLs for a bucket
type ObjectStorage interface {
	PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)
	PublicURL(key string) string
	// OwnsURL reports whether u points into this storage
	OwnsURL(u string) bool
}

// TourImages is the part of the catalog that owns tour galleries
type TourImages interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.TourResponse, error)
	AttachImages(ctx context.Context, tenantID, id uuid.UUID, urls []string) (*catalogapp.TourResponse, error)
}

// FileSpec describes one file the browser wants to upload
type FileSpec struct {
	Name        string `json:"name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignRequest asks for upload URLs for a tour's images
type PresignRequest struct {
	TourID string     `json:"tour_id" binding:"required,uuid"`
	Files  []FileSpec `json:"files" binding:"required,min=1,dive"`
}

// Upload is the target of one browser upload
type Upload struct {
	Name        string    `json:"name"`
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	UploadURL   string    `json:"upload_url"`
	PublicURL   string    `json:"public_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// PresignResponse lists upload targets in request order
type PresignResponse struct {
	Uploads []Upload `json:"uploads"`
}

// AttachRequest appends uploaded images to a tour
type AttachRequest struct {
	TourID string   `json:"tour_id" binding:"required,uuid"`
	URLs   []string `json:"urls" binding:"required,min=1,max=20,dive,url"`
}

// MediaService handles bulk image uploads
type MediaService struct {
	storage   ObjectStorage
	tours     TourImages
	urlExpiry time.Duration
	logger    *zap.Logger
}

// NewMediaService creates a new MediaService
func NewMediaService(storage ObjectStorage, tours TourImages, urlExpiry time.Duration, logger *zap.Logger) *MediaService {
	if urlExpiry <= 0 {
		urlExpiry = 15 * time.Minute
	}
	return &MediaService{storage: storage, tours: tours, urlExpiry: urlExpiry, logger: logger}
}

// Presign returns one upload URL per file, keyed under the tenant and tour
func (s *MediaService) Presign(ctx context.Context, cfg tenant.Config, req PresignRequest) (*PresignResponse, error) {
	tourID, err := uuid.Parse(req.TourID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid tour ID")
	}
	if len(req.Files) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one file is required")
	}
	if len(req.Files) > MaxFilesPerRequest {
		return nil, shared.NewDomainError("TOO_MANY_FILES", fmt.Sprintf("At most %d files can be uploaded at once", MaxFilesPerRequest))
	}

	exts := make([]string, len(req.Files))
	for i, f := range req.Files {
		ext, ok := allowedContentTypes[normalizeContentType(f.ContentType)]
		if !ok {
			return nil, shared.NewDomainError("UNSUPPORTED_MEDIA_TYPE",
				fmt.Sprintf("%s: only JPEG, PNG, WebP and AVIF images are accepted", f.Name))
		}
		exts[i] = ext
	}

	if _, err := s.tours.GetByID(ctx, cfg.TenantID, tourID); err != nil {
		return nil, err
	}

	uploads := make([]Upload, len(req.Files))
	for i, f := range req.Files {
		key := ObjectKey(cfg.Key, tourID, uuid.New(), exts[i])
		contentType := normalizeContentType(f.ContentType)
		uploadURL, expiresAt, err := s.storage.PresignUpload(ctx, key, contentType, s.urlExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to presign %s: %w", f.Name, err)
		}
		uploads[i] = Upload{
			Name:        f.Name,
			Key:         key,
			ContentType: contentType,
			UploadURL:   uploadURL,
			PublicURL:   s.storage.PublicURL(key),
			ExpiresAt:   expiresAt,
		}
	}

	s.logger.Info("Issued image upload URLs",
		zap.String("tenant", cfg.Key),
		zap.String("tour_id", tourID.String()),
		zap.Int("count", len(uploads)))
	return &PresignResponse{Uploads: uploads}, nil
}

// Attach appends uploaded images to the tour gallery. Only URLs served by
// the configured storage are accepted.
func (s *MediaService) Attach(ctx context.Context, tenantID uuid.UUID, req AttachRequest) (*catalogapp.TourResponse, error) {
	tourID, err := uuid.Parse(req.TourID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid tour ID")
	}
	for _, u := range req.URLs {
		if !s.storage.OwnsURL(u) {
			return nil, shared.NewDomainError("FOREIGN_IMAGE_URL", "Image URL was not issued by this store: "+u)
		}
	}
	return s.tours.AttachImages(ctx, tenantID, tourID, req.URLs)
}

// ObjectKey builds tenants/<key>/tours/<tourId>/<id><ext>
func ObjectKey(tenantKey string, tourID, id uuid.UUID, ext string) string {
	return "tenants/" + tenantKey + "/tours/" + tourID.String() + "/" + id.String() + ext
}

func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.ToLower(strings.TrimSpace(ct))
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	return ct
}
