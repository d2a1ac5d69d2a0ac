package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the authorization level of a user
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin || r == RoleSuperAdmin
}

// CanAdminister reports whether the role may use the admin API
func (r Role) CanAdminister() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is a storefront account. Customers and admins live in the same table
// and are told apart by Role.
type User struct {
	shared.TenantAggregateRoot
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Role         Role
	FirebaseUID  string
	IsActive     bool
	LastLoginAt  *time.Time
}

// NewUser creates a password-based user
func NewUser(tenantID uuid.UUID, email, password, name string, role Role) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               normalizeEmail(email),
		PasswordHash:        hash,
		Name:                strings.TrimSpace(name),
		Role:                role,
		IsActive:            true,
	}
	user.AddDomainEvent(NewUserRegisteredEvent(user))
	return user, nil
}

// NewFirebaseUser creates a customer known only through a Firebase identity.
// The user has no password and can only sign in with Firebase tokens.
func NewFirebaseUser(tenantID uuid.UUID, firebaseUID, email, name string) (*User, error) {
	if strings.TrimSpace(firebaseUID) == "" {
		return nil, shared.NewDomainError("INVALID_FIREBASE_UID", "Firebase UID cannot be empty")
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}

	user := &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               normalizeEmail(email),
		Name:                strings.TrimSpace(name),
		Role:                RoleCustomer,
		FirebaseUID:         firebaseUID,
		IsActive:            true,
	}
	user.AddDomainEvent(NewUserRegisteredEvent(user))
	return user, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.Touch()
	u.IncrementVersion()
	return nil
}

// UpdateProfile sets the display name and phone
func (u *User) UpdateProfile(name, phone string) error {
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	u.Name = strings.TrimSpace(name)
	u.Phone = strings.TrimSpace(phone)
	u.Touch()
	u.IncrementVersion()
	return nil
}

// SetRole changes the user's role
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	u.Role = role
	u.Touch()
	u.IncrementVersion()
	return nil
}

// LinkFirebase attaches a Firebase identity to an existing account
func (u *User) LinkFirebase(uid string) {
	u.FirebaseUID = uid
	u.Touch()
	u.IncrementVersion()
}

// Deactivate blocks further sign-ins
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
	u.IncrementVersion()
}

// RecordLogin records a successful sign-in
func (u *User) RecordLogin(now time.Time) {
	u.LastLoginAt = &now
}

// CanLogin reports whether the account may sign in
func (u *User) CanLogin() bool {
	return u.IsActive
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	var hasLetter, hasDigit bool
	for _, c := range password {
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			hasLetter = true
		}
	}
	if !hasLetter || !hasDigit {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain letters and digits")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
