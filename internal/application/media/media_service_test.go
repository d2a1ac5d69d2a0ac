package media

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/travelhub/backend/internal/application/catalog"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

type MockTourImages struct {
	mock.Mock
}

func (m *MockTourImages) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.TourResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TourResponse), args.Error(1)
}

func (m *MockTourImages) AttachImages(ctx context.Context, tenantID, id uuid.UUID, urls []string) (*catalogapp.TourResponse, error) {
	args := m.Called(ctx, tenantID, id, urls)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TourResponse), args.Error(1)
}

// fakeStorage issues predictable URLs under base
type fakeStorage struct {
	base string
}

func (f fakeStorage) PresignUpload(_ context.Context, key, _ string, expiresIn time.Duration) (string, time.Time, error) {
	return f.base + "/" + key + "?signed", time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC).Add(expiresIn), nil
}

func (f fakeStorage) PublicURL(key string) string { return f.base + "/" + key }

func (f fakeStorage) OwnsURL(u string) bool { return strings.HasPrefix(u, f.base+"/") }

func setupMedia() (*MediaService, *MockTourImages, tenant.Config) {
	tours := new(MockTourImages)
	svc := NewMediaService(fakeStorage{base: "https://cdn.test"}, tours, 10*time.Minute, zap.NewNop())
	return svc, tours, tenant.Config{TenantID: uuid.New(), Key: "island"}
}

func TestMediaService_Presign(t *testing.T) {
	ctx := context.Background()
	tourID := uuid.New()

	t.Run("keys uploads under tenant and tour", func(t *testing.T) {
		svc, tours, cfg := setupMedia()
		tours.On("GetByID", ctx, cfg.TenantID, tourID).Return(&catalogapp.TourResponse{ID: tourID}, nil)

		resp, err := svc.Presign(ctx, cfg, PresignRequest{
			TourID: tourID.String(),
			Files: []FileSpec{
				{Name: "beach.JPG", ContentType: "image/jpeg"},
				{Name: "reef.webp", ContentType: "image/webp; charset=binary"},
			},
		})

		require.NoError(t, err)
		require.Len(t, resp.Uploads, 2)
		prefix := "tenants/island/tours/" + tourID.String() + "/"
		assert.True(t, strings.HasPrefix(resp.Uploads[0].Key, prefix))
		assert.True(t, strings.HasSuffix(resp.Uploads[0].Key, ".jpg"))
		assert.True(t, strings.HasSuffix(resp.Uploads[1].Key, ".webp"))
		assert.Equal(t, "image/webp", resp.Uploads[1].ContentType)
		assert.Equal(t, "https://cdn.test/"+resp.Uploads[0].Key, resp.Uploads[0].PublicURL)
		assert.NotEqual(t, resp.Uploads[0].Key, resp.Uploads[1].Key)
	})

	t.Run("rejects non image content types", func(t *testing.T) {
		svc, tours, cfg := setupMedia()

		_, err := svc.Presign(ctx, cfg, PresignRequest{
			TourID: tourID.String(),
			Files:  []FileSpec{{Name: "doc.pdf", ContentType: "application/pdf"}},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", domainErr.Code)
		tours.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("caps files per request", func(t *testing.T) {
		svc, _, cfg := setupMedia()
		files := make([]FileSpec, MaxFilesPerRequest+1)
		for i := range files {
			files[i] = FileSpec{Name: "x.png", ContentType: "image/png"}
		}

		_, err := svc.Presign(ctx, cfg, PresignRequest{TourID: tourID.String(), Files: files})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOO_MANY_FILES", domainErr.Code)
	})

	t.Run("tour must belong to tenant", func(t *testing.T) {
		svc, tours, cfg := setupMedia()
		tours.On("GetByID", ctx, cfg.TenantID, tourID).Return(nil, shared.ErrNotFound)

		_, err := svc.Presign(ctx, cfg, PresignRequest{
			TourID: tourID.String(),
			Files:  []FileSpec{{Name: "a.avif", ContentType: "image/avif"}},
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestMediaService_Attach(t *testing.T) {
	ctx := context.Background()
	tourID := uuid.New()

	t.Run("appends storage urls", func(t *testing.T) {
		svc, tours, cfg := setupMedia()
		urls := []string{"https://cdn.test/tenants/island/tours/x/1.jpg"}
		tours.On("AttachImages", ctx, cfg.TenantID, tourID, urls).
			Return(&catalogapp.TourResponse{ID: tourID, Images: urls}, nil)

		resp, err := svc.Attach(ctx, cfg.TenantID, AttachRequest{TourID: tourID.String(), URLs: urls})

		require.NoError(t, err)
		assert.Equal(t, urls, resp.Images)
	})

	t.Run("rejects foreign urls", func(t *testing.T) {
		svc, tours, cfg := setupMedia()

		_, err := svc.Attach(ctx, cfg.TenantID, AttachRequest{
			TourID: tourID.String(),
			URLs:   []string{"https://evil.example/x.jpg"},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FOREIGN_IMAGE_URL", domainErr.Code)
		tours.AssertNotCalled(t, "AttachImages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
