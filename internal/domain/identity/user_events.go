package identity

import (
	"github.com/travelhub/backend/internal/domain/shared"
)

// AggregateTypeUser is the aggregate type name for users
const AggregateTypeUser = "User"

// EventTypeUserRegistered is emitted when an account is created
const EventTypeUserRegistered = "UserRegistered"

// UserRegisteredEvent is published when a user signs up
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, u.ID, u.TenantID),
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.Role,
	}
}
