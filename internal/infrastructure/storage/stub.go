package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/travelhub/backend/internal/application/media"
)

// StubObjectStorage stands in when no bucket is configured. Upload URLs
// point at BaseURL and are not backed by anything, which is enough for
// local storefront development.
type StubObjectStorage struct {
	BaseURL string
}

// NewStubObjectStorage creates a stub serving from baseURL
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "http://localhost:9000/travelhub"
	}
	return &StubObjectStorage{BaseURL: strings.TrimRight(baseURL, "/")}
}

var _ media.ObjectStorage = (*StubObjectStorage)(nil)

// PresignUpload returns an unsigned URL at the stub location
func (s *StubObjectStorage) PresignUpload(_ context.Context, key, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.PublicURL(key) + "?expires=" + expiresAt.UTC().Format(time.RFC3339), expiresAt, nil
}

// PublicURL returns the stub location of key
func (s *StubObjectStorage) PublicURL(key string) string {
	return s.BaseURL + "/" + strings.TrimLeft(key, "/")
}

// OwnsURL reports whether u was issued by this stub
func (s *StubObjectStorage) OwnsURL(u string) bool {
	return strings.HasPrefix(u, s.BaseURL+"/")
}
