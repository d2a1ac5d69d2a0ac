package shared

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Is(t *testing.T) {
	wrapped := fmt.Errorf("reserve 18:00: %w", NewDomainError("SLOT_FULL", "only 2 seats left"))

	assert.ErrorIs(t, wrapped, ErrSlotFull)
	assert.NotErrorIs(t, wrapped, ErrStopSale)
}

func TestDateHelpers(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		d, err := ParseDate("2026-07-14")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC), d)

		_, err = ParseDate("14/07/2026")
		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_DATE", de.Code)
	})

	t.Run("date only drops the clock", func(t *testing.T) {
		athens := time.FixedZone("EEST", 3*3600)
		assert.Equal(t, time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
			DateOnly(time.Date(2026, 7, 14, 23, 30, 0, 0, athens)))
	})

	t.Run("days between", func(t *testing.T) {
		from := time.Date(2026, 7, 14, 22, 0, 0, 0, time.UTC)
		assert.Equal(t, 3, DaysBetween(from, time.Date(2026, 7, 17, 1, 0, 0, 0, time.UTC)))
		assert.Equal(t, 0, DaysBetween(from, from.Add(time.Hour)))
		assert.Equal(t, -1, DaysBetween(from, from.AddDate(0, 0, -1)))
	})
}

func TestBaseEntity_Touch(t *testing.T) {
	e := NewBaseEntity()
	created := e.CreatedAt
	e.UpdatedAt = created.Add(-time.Minute)

	e.Touch()

	assert.Equal(t, time.UTC, e.UpdatedAt.Location())
	assert.False(t, e.UpdatedAt.Before(created))
	assert.Equal(t, created, e.GetCreatedAt())
}

func TestBaseAggregateRoot_Events(t *testing.T) {
	tenantID := uuid.New()
	root := NewTenantAggregateRoot(tenantID)
	assert.Equal(t, 1, root.GetVersion())
	assert.True(t, root.BelongsTo(tenantID))

	created := NewBaseDomainEvent("BookingCreated", "Booking", root.ID, tenantID)
	confirmed := NewBaseDomainEvent("BookingConfirmed", "Booking", root.ID, tenantID)
	root.AddDomainEvent(&created)
	root.AddDomainEvent(&confirmed)

	events := root.PullDomainEvents()
	assert.Equal(t, []string{"BookingCreated", "BookingConfirmed"}, EventTypesOf(events))
	assert.Empty(t, root.GetDomainEvents())
	assert.Equal(t, tenantID, events[0].TenantID())
	assert.Equal(t, root.ID, events[1].AggregateID())
}
