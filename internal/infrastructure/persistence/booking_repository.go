package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/booking"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBookingRepository implements BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID finds a booking owned by tenantID
func (r *GormBookingRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*booking.Booking, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID))
}

// FindByIDAnyTenant finds a booking by ID across tenants; used by payment webhooks
func (r *GormBookingRepository) FindByIDAnyTenant(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByReference finds a booking by its public reference
func (r *GormBookingRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, ref string) (*booking.Booking, error) {
	return r.first(r.db.WithContext(ctx).Where("tenant_id = ? AND reference = ?", tenantID, ref))
}

// FindByPaymentIntent finds a booking by its Stripe payment intent
func (r *GormBookingRepository) FindByPaymentIntent(ctx context.Context, paymentIntentID string) (*booking.Booking, error) {
	return r.first(r.db.WithContext(ctx).Where("payment_intent_id = ?", paymentIntentID))
}

// FindAll lists bookings with filtering and paging
func (r *GormBookingRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]booking.Booking, error) {
	var bookingModels []models.BookingModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BookingModel{}).Where("tenant_id = ?", tenantID), filter)
	query = paginate(query, filter, BookingSortFields, "created_at")
	if err := query.Find(&bookingModels).Error; err != nil {
		return nil, err
	}
	bookings := make([]booking.Booking, len(bookingModels))
	for i, model := range bookingModels {
		bookings[i] = *model.ToDomain()
	}
	return bookings, nil
}

// Count counts bookings matching the filter
func (r *GormBookingRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BookingModel{}).Where("tenant_id = ?", tenantID), filter)
	err := query.Count(&count).Error
	return count, err
}

// Save inserts a new booking or updates an existing one under optimistic
// locking. Each lifecycle transition bumps Version by one, so the stored row
// must still carry Version-1.
func (r *GormBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	model := models.BookingModelFromDomain(b)
	if b.Version <= 1 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&models.BookingModel{}).Where("id = ?", b.ID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return r.db.WithContext(ctx).Create(model).Error
		}
	}
	result := r.db.WithContext(ctx).
		Model(model).
		Select("*").
		Where("id = ? AND version = ?", b.ID, b.Version-1).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// HasCompletedBooking reports whether the user finished the tour
func (r *GormBookingRepository) HasCompletedBooking(ctx context.Context, tenantID, userID, tourID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BookingModel{}).
		Where("tenant_id = ? AND user_id = ? AND tour_id = ? AND status = ?", tenantID, userID, tourID, booking.StatusCompleted).
		Count(&count).Error
	return count > 0, err
}

func (r *GormBookingRepository) first(query *gorm.DB) (*booking.Booking, error) {
	var model models.BookingModel
	if err := query.First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

func (r *GormBookingRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(reference) LIKE ? OR LOWER(customer_email) LIKE ? OR LOWER(customer_name) LIKE ?", pattern, pattern, pattern)
	}
	if status, ok := filter.Filters[booking.FilterStatus].(booking.Status); ok {
		query = query.Where("status = ?", status)
	}
	if id, ok := filter.Filters[booking.FilterTourID].(uuid.UUID); ok {
		query = query.Where("tour_id = ?", id)
	}
	if id, ok := filter.Filters[booking.FilterUserID].(uuid.UUID); ok {
		query = query.Where("user_id = ?", id)
	}
	if from, ok := filter.Filters[booking.FilterDateFrom].(time.Time); ok {
		query = query.Where("date >= ?", shared.DateOnly(from))
	}
	if to, ok := filter.Filters[booking.FilterDateTo].(time.Time); ok {
		query = query.Where("date <= ?", shared.DateOnly(to))
	}
	return query
}

var _ booking.BookingRepository = (*GormBookingRepository)(nil)
