package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/travelhub/backend/internal/infrastructure/config"
	"google.golang.org/api/option"
)

// ErrFirebaseDisabled is returned when no Firebase project is configured
var ErrFirebaseDisabled = errors.New("firebase authentication is not configured")

// ExternalIdentity is the verified identity behind a Firebase ID token
type ExternalIdentity struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
}

// IDTokenVerifier checks bearer tokens issued by an external identity provider
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error)
}

// firebaseTokenClient is the part of *auth.Client the verifier uses
type firebaseTokenClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier verifies Firebase ID tokens with the Admin SDK
type FirebaseVerifier struct {
	client firebaseTokenClient
}

// NewFirebaseVerifier initializes the Firebase app from config. Without a
// credentials file the SDK falls back to application default credentials.
func NewFirebaseVerifier(ctx context.Context, cfg config.FirebaseConfig) (*FirebaseVerifier, error) {
	if !cfg.Enabled {
		return nil, ErrFirebaseDisabled
	}

	var opts []option.ClientOption
	if f := strings.TrimSpace(cfg.CredentialsFile); f != "" {
		opts = append(opts, option.WithCredentialsFile(f))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app init failed: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth init failed: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// VerifyIDToken validates the token signature, audience and expiry and
// returns the identity it carries
func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	uid := strings.TrimSpace(token.UID)
	if uid == "" {
		return nil, ErrInvalidClaims
	}

	id := &ExternalIdentity{UID: uid}
	if s, ok := token.Claims["email"].(string); ok {
		id.Email = strings.TrimSpace(s)
	}
	if b, ok := token.Claims["email_verified"].(bool); ok {
		id.EmailVerified = b
	}
	if s, ok := token.Claims["name"].(string); ok {
		id.Name = strings.TrimSpace(s)
	}
	return id, nil
}

var _ IDTokenVerifier = (*FirebaseVerifier)(nil)
