package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/review"
)

// ReviewModel is the persistence model for the Review aggregate
type ReviewModel struct {
	TenantAggregateModel
	TourID       uuid.UUID     `gorm:"type:uuid;not null;index"`
	UserID       uuid.UUID     `gorm:"type:uuid;not null;index"`
	BookingID    *uuid.UUID    `gorm:"type:uuid"`
	AuthorName   string        `gorm:"type:varchar(200)"`
	Rating       int           `gorm:"not null"`
	Title        string        `gorm:"type:varchar(200)"`
	Comment      string        `gorm:"type:text"`
	Status       review.Status `gorm:"type:varchar(20);not null;index"`
	Verified     bool          `gorm:"not null;default:false"`
	ModeratedAt  *time.Time
	RejectReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review
func (m *ReviewModel) ToDomain() *review.Review {
	return &review.Review{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		TourID:              m.TourID,
		UserID:              m.UserID,
		BookingID:           m.BookingID,
		AuthorName:          m.AuthorName,
		Rating:              m.Rating,
		Title:               m.Title,
		Comment:             m.Comment,
		Status:              m.Status,
		Verified:            m.Verified,
		ModeratedAt:         m.ModeratedAt,
		RejectReason:        m.RejectReason,
	}
}

// ReviewModelFromDomain creates a persistence model from a domain Review
func ReviewModelFromDomain(r *review.Review) *ReviewModel {
	m := &ReviewModel{
		TourID:       r.TourID,
		UserID:       r.UserID,
		BookingID:    r.BookingID,
		AuthorName:   r.AuthorName,
		Rating:       r.Rating,
		Title:        r.Title,
		Comment:      r.Comment,
		Status:       r.Status,
		Verified:     r.Verified,
		ModeratedAt:  r.ModeratedAt,
		RejectReason: r.RejectReason,
	}
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	return m
}
