package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/identity"
)

// RegisterInput contains the fields of a storefront sign-up
type RegisterInput struct {
	TenantID uuid.UUID
	Email    string
	Password string
	Name     string
}

// LoginInput contains login credentials
type LoginInput struct {
	TenantID uuid.UUID
	Email    string
	Password string
}

// AuthResult is returned after a successful register, login or refresh
type AuthResult struct {
	User                  UserInfo  `json:"user"`
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput identifies the session being closed
type LogoutInput struct {
	UserID    uuid.UUID
	JTI       string
	TokenTTL  time.Duration
	AllDevice bool
}

// UserInfo represents the public profile of a user
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Principal is the authenticated caller of a request
type Principal struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Email    string
	Role     identity.Role
	Source   string // "jwt" or "firebase"
}

// IsAdmin reports whether the caller may use the admin API
func (p Principal) IsAdmin() bool {
	return p.Role.CanAdminister()
}

// ToUserInfo converts a domain User to UserInfo
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		Name:        u.Name,
		Phone:       u.Phone,
		Role:        string(u.Role),
		LastLoginAt: u.LastLoginAt,
	}
}
