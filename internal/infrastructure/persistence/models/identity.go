package models

import (
	"time"

	"github.com/travelhub/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate
type UserModel struct {
	TenantAggregateModel
	Email        string        `gorm:"type:varchar(200);index"`
	PasswordHash string        `gorm:"type:varchar(255)"`
	Name         string        `gorm:"type:varchar(200)"`
	Phone        string        `gorm:"type:varchar(50)"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'customer'"`
	FirebaseUID  string        `gorm:"column:firebase_uid;type:varchar(128);index"`
	IsActive     bool          `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		Name:                m.Name,
		Phone:               m.Phone,
		Role:                m.Role,
		FirebaseUID:         m.FirebaseUID,
		IsActive:            m.IsActive,
		LastLoginAt:         m.LastLoginAt,
	}
}

// UserModelFromDomain creates a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Phone:        u.Phone,
		Role:         u.Role,
		FirebaseUID:  u.FirebaseUID,
		IsActive:     u.IsActive,
		LastLoginAt:  u.LastLoginAt,
	}
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	return m
}

// AllModels lists every persistence model, in dependency order, for
// AutoMigrate in tests and local development
func AllModels() []any {
	return []any{
		&TenantModel{},
		&UserModel{},
		&CategoryModel{},
		&DestinationModel{},
		&TourModel{},
		&TourCategoryModel{},
		&SpecialOfferModel{},
		&AvailabilityModel{},
		&SlotModel{},
		&StopSaleModel{},
		&BookingModel{},
		&ReviewModel{},
		&WishlistItemModel{},
		&HeroSlideModel{},
		&BlogPostModel{},
	}
}
