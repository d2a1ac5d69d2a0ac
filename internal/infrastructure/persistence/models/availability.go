package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/travelhub/backend/internal/domain/availability"
)

// AvailabilityModel is the persistence model for one tour day
type AvailabilityModel struct {
	TenantAggregateModel
	TourID   uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_availability_tour_date,priority:1"`
	Date     time.Time   `gorm:"type:date;not null;uniqueIndex:idx_availability_tour_date,priority:2"`
	StopSale bool        `gorm:"not null;default:false"`
	Notes    string      `gorm:"type:text"`
	Slots    []SlotModel `gorm:"foreignKey:AvailabilityID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (AvailabilityModel) TableName() string {
	return "availabilities"
}

// SlotModel is one time slot row. Seats are reserved with a conditional
// UPDATE on this table.
type SlotModel struct {
	AvailabilityID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SlotTime       string    `gorm:"type:varchar(5);primaryKey"`
	Capacity       int       `gorm:"not null;default:0"`
	Booked         int       `gorm:"not null;default:0"`
	ExtraCapacity  int       `gorm:"not null;default:0"`
	Blocked        bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (SlotModel) TableName() string {
	return "availability_slots"
}

// ToDomain converts the persistence model to a domain Availability
func (m *AvailabilityModel) ToDomain() *availability.Availability {
	slots := make([]availability.Slot, 0, len(m.Slots))
	for _, s := range m.Slots {
		slots = append(slots, availability.Slot{
			Time:          s.SlotTime,
			Capacity:      s.Capacity,
			Booked:        s.Booked,
			ExtraCapacity: s.ExtraCapacity,
			Blocked:       s.Blocked,
		})
	}
	return &availability.Availability{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		TourID:              m.TourID,
		Date:                m.Date.UTC(),
		Slots:               slots,
		StopSale:            m.StopSale,
		Notes:               m.Notes,
	}
}

// AvailabilityModelFromDomain creates a persistence model from a domain Availability
func AvailabilityModelFromDomain(a *availability.Availability) *AvailabilityModel {
	m := &AvailabilityModel{
		TourID:   a.TourID,
		Date:     a.Date,
		StopSale: a.StopSale,
		Notes:    a.Notes,
		Slots:    make([]SlotModel, 0, len(a.Slots)),
	}
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	for _, s := range a.Slots {
		m.Slots = append(m.Slots, SlotModel{
			AvailabilityID: a.ID,
			SlotTime:       s.Time,
			Capacity:       s.Capacity,
			Booked:         s.Booked,
			ExtraCapacity:  s.ExtraCapacity,
			Blocked:        s.Blocked,
		})
	}
	return m
}

// StopSaleModel is the persistence model for the StopSale aggregate
type StopSaleModel struct {
	TenantAggregateModel
	TourID    uuid.UUID `gorm:"type:uuid;not null;index"`
	OptionIDs []string  `gorm:"type:jsonb;serializer:json"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (StopSaleModel) TableName() string {
	return "stop_sales"
}

// ToDomain converts the persistence model to a domain StopSale
func (m *StopSaleModel) ToDomain() *availability.StopSale {
	options := m.OptionIDs
	if options == nil {
		options = make([]string, 0)
	}
	return &availability.StopSale{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		TourID:              m.TourID,
		OptionIDs:           options,
		StartDate:           m.StartDate.UTC(),
		EndDate:             m.EndDate.UTC(),
		Reason:              m.Reason,
	}
}

// StopSaleModelFromDomain creates a persistence model from a domain StopSale
func StopSaleModelFromDomain(s *availability.StopSale) *StopSaleModel {
	m := &StopSaleModel{
		TourID:    s.TourID,
		OptionIDs: s.OptionIDs,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Reason:    s.Reason,
	}
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	return m
}
