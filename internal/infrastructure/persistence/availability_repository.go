package persistence

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/availability"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// ErrDayHasBookings is returned when deleting a day that still holds seats
var ErrDayHasBookings = shared.NewDomainError("AVAILABILITY_HAS_BOOKINGS", "Cannot delete a day that has booked seats")

// GormAvailabilityRepository implements AvailabilityRepository using GORM
type GormAvailabilityRepository struct {
	db *gorm.DB
}

// NewGormAvailabilityRepository creates a new GormAvailabilityRepository
func NewGormAvailabilityRepository(db *gorm.DB) *GormAvailabilityRepository {
	return &GormAvailabilityRepository{db: db}
}

// FindByTourAndDate finds the record of one day
func (r *GormAvailabilityRepository) FindByTourAndDate(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time) (*availability.Availability, error) {
	var model models.AvailabilityModel
	err := r.db.WithContext(ctx).
		Preload("Slots", orderSlots).
		Where("tenant_id = ? AND tour_id = ? AND date = ?", tenantID, tourID, shared.DateOnly(date)).
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByTourAndRange lists day records within [from, to]
func (r *GormAvailabilityRepository) FindByTourAndRange(ctx context.Context, tenantID, tourID uuid.UUID, from, to time.Time) ([]availability.Availability, error) {
	var dayModels []models.AvailabilityModel
	err := r.db.WithContext(ctx).
		Preload("Slots", orderSlots).
		Where("tenant_id = ? AND tour_id = ? AND date >= ? AND date <= ?", tenantID, tourID, shared.DateOnly(from), shared.DateOnly(to)).
		Order("date ASC").
		Find(&dayModels).Error
	if err != nil {
		return nil, err
	}
	days := make([]availability.Availability, len(dayModels))
	for i, model := range dayModels {
		days[i] = *model.ToDomain()
	}
	return days, nil
}

// Save writes the day record and its slot layout. Slot rows are updated in
// place and booked is never written, so seats taken by ReserveSlot since the
// day was loaded survive. Capacity and removal checks run against the live
// booked column.
func (r *GormAvailabilityRepository) Save(ctx context.Context, a *availability.Availability) error {
	model := models.AvailabilityModelFromDomain(a)
	model.Date = shared.DateOnly(model.Date)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Slots").Save(model).Error; err != nil {
			return err
		}

		var current []string
		err := tx.Model(&models.SlotModel{}).
			Where("availability_id = ?", a.ID).
			Pluck("slot_time", &current).Error
		if err != nil {
			return err
		}

		kept := make(map[string]struct{}, len(model.Slots))
		for _, slot := range model.Slots {
			kept[slot.SlotTime] = struct{}{}
			if !slices.Contains(current, slot.SlotTime) {
				slot.Booked = 0
				if err := tx.Create(&slot).Error; err != nil {
					return err
				}
				continue
			}
			result := tx.Model(&models.SlotModel{}).
				Where("availability_id = ? AND slot_time = ?", a.ID, slot.SlotTime).
				Where("booked <= ?", slot.Capacity+slot.ExtraCapacity).
				Updates(map[string]interface{}{
					"capacity":       slot.Capacity,
					"extra_capacity": slot.ExtraCapacity,
					"blocked":        slot.Blocked,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return availability.ErrCapacityBelowBooked
			}
		}

		var removed []string
		for _, t := range current {
			if _, ok := kept[t]; !ok {
				removed = append(removed, t)
			}
		}
		if len(removed) == 0 {
			return nil
		}
		result := tx.Where("availability_id = ? AND slot_time IN ? AND booked = 0", a.ID, removed).
			Delete(&models.SlotModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected < int64(len(removed)) {
			return availability.ErrSlotHasBookings
		}
		return nil
	})
}

// Delete removes a day record with no booked seats
func (r *GormAvailabilityRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booked int64
		err := tx.Model(&models.SlotModel{}).
			Where("availability_id = ? AND booked > 0", id).
			Count(&booked).Error
		if err != nil {
			return err
		}
		if booked > 0 {
			return ErrDayHasBookings
		}
		result := tx.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.AvailabilityModel{})
		if err := deleteResult(result); err != nil {
			return err
		}
		return tx.Where("availability_id = ?", id).Delete(&models.SlotModel{}).Error
	})
}

// ReserveSlot adds qty seats in a single conditional UPDATE. When no row is
// touched the day is reloaded to report why.
func (r *GormAvailabilityRepository) ReserveSlot(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, slotTime string, qty int) error {
	if qty <= 0 {
		return shared.ErrInvalidInput
	}
	result := r.db.WithContext(ctx).Model(&models.SlotModel{}).
		Where("availability_id = (?)", r.dayID(ctx, tenantID, tourID, date, true)).
		Where("slot_time = ? AND blocked = ?", slotTime, false).
		Where("booked + ? <= capacity + extra_capacity", qty).
		Update("booked", gorm.Expr("booked + ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	day, err := r.FindByTourAndDate(ctx, tenantID, tourID, date)
	if err != nil {
		return err
	}
	if day.StopSale {
		return shared.ErrStopSale
	}
	slot, ok := day.Slot(slotTime)
	if !ok {
		return shared.ErrNotFound
	}
	if slot.Blocked {
		return shared.ErrStopSale
	}
	return shared.ErrSlotFull
}

// ReleaseSlot gives back qty seats, never going below zero
func (r *GormAvailabilityRepository) ReleaseSlot(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, slotTime string, qty int) error {
	if qty <= 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.SlotModel{}).
		Where("availability_id = (?)", r.dayID(ctx, tenantID, tourID, date, false)).
		Where("slot_time = ?", slotTime).
		Update("booked", gorm.Expr("CASE WHEN booked >= ? THEN booked - ? ELSE 0 END", qty, qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormAvailabilityRepository) dayID(ctx context.Context, tenantID, tourID uuid.UUID, date time.Time, onSale bool) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.AvailabilityModel{}).
		Select("id").
		Where("tenant_id = ? AND tour_id = ? AND date = ?", tenantID, tourID, shared.DateOnly(date))
	if onSale {
		query = query.Where("stop_sale = ?", false)
	}
	return query
}

func orderSlots(db *gorm.DB) *gorm.DB {
	return db.Order("slot_time ASC")
}

var _ availability.AvailabilityRepository = (*GormAvailabilityRepository)(nil)

// GormStopSaleRepository implements StopSaleRepository using GORM
type GormStopSaleRepository struct {
	db *gorm.DB
}

// NewGormStopSaleRepository creates a new GormStopSaleRepository
func NewGormStopSaleRepository(db *gorm.DB) *GormStopSaleRepository {
	return &GormStopSaleRepository{db: db}
}

// FindByID finds a stop-sale owned by tenantID
func (r *GormStopSaleRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*availability.StopSale, error) {
	var model models.StopSaleModel
	if err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindOverlapping lists stop-sales of a tour that intersect [from, to]
func (r *GormStopSaleRepository) FindOverlapping(ctx context.Context, tenantID, tourID uuid.UUID, from, to time.Time) ([]availability.StopSale, error) {
	var stopModels []models.StopSaleModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND tour_id = ?", tenantID, tourID).
		Where("start_date <= ? AND end_date >= ?", shared.DateOnly(to), shared.DateOnly(from)).
		Order("start_date ASC").
		Find(&stopModels).Error
	if err != nil {
		return nil, err
	}
	return toStopSales(stopModels), nil
}

// FindAll lists stop-sales with paging
func (r *GormStopSaleRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]availability.StopSale, error) {
	var stopModels []models.StopSaleModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StopSaleModel{}).Where("tenant_id = ?", tenantID), filter)
	query = paginate(query, filter, StopSaleSortFields, "start_date")
	if err := query.Find(&stopModels).Error; err != nil {
		return nil, err
	}
	return toStopSales(stopModels), nil
}

// Count counts stop-sales matching the filter
func (r *GormStopSaleRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StopSaleModel{}).Where("tenant_id = ?", tenantID), filter)
	err := query.Count(&count).Error
	return count, err
}

// Save creates or updates a stop-sale
func (r *GormStopSaleRepository) Save(ctx context.Context, s *availability.StopSale) error {
	model := models.StopSaleModelFromDomain(s)
	model.StartDate = shared.DateOnly(model.StartDate)
	model.EndDate = shared.DateOnly(model.EndDate)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a stop-sale
func (r *GormStopSaleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.StopSaleModel{}))
}

func (r *GormStopSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if id, ok := filter.Filters["tour_id"].(uuid.UUID); ok {
		query = query.Where("tour_id = ?", id)
	}
	return query
}

func toStopSales(stopModels []models.StopSaleModel) []availability.StopSale {
	stopSales := make([]availability.StopSale, len(stopModels))
	for i, model := range stopModels {
		stopSales[i] = *model.ToDomain()
	}
	return stopSales
}

var _ availability.StopSaleRepository = (*GormStopSaleRepository)(nil)
