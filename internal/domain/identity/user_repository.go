package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email within the tenant
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)

	// FindByFirebaseUID finds the user linked to a Firebase identity
	FindByFirebaseUID(ctx context.Context, tenantID uuid.UUID, uid string) (*User, error)

	// ExistsByEmail checks if an email is already registered within the tenant
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}
