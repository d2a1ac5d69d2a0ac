//go:build integration

package persistence

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/travelhub/backend/internal/domain/availability"
	"github.com/travelhub/backend/internal/domain/offer"
	"github.com/travelhub/backend/internal/domain/shared"
	"github.com/travelhub/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// seededTenantID is inserted by the default tenant migration
var seededTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// setupPostgres starts a disposable postgres, applies the migrations and
// returns a gorm handle with a real connection pool
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("travelhub_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	m, err := migration.New(sqlDB, migrationsPath, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	pool, err := db.DB()
	require.NoError(t, err)
	pool.SetMaxOpenConns(20)
	return db
}

func TestPostgres_ConcurrentReservations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()
	db := setupPostgres(t)

	tour := newTestTour(t, seededTenantID, "Harbour Sunset Cruise", 80, true)
	require.NoError(t, NewGormTourRepository(db).Save(ctx, tour))

	date := time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC)
	repo := NewGormAvailabilityRepository(db)
	day, err := availability.NewAvailability(seededTenantID, tour.ID, date, []availability.Slot{
		{Time: "18:00", Capacity: 10, ExtraCapacity: 2},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, day))

	const attempts = 40
	var reserved, full atomic.Int32
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.ReserveSlot(ctx, seededTenantID, tour.ID, date, "18:00", 1)
			switch {
			case err == nil:
				reserved.Add(1)
			case errors.Is(err, shared.ErrSlotFull):
				full.Add(1)
			default:
				t.Errorf("unexpected reserve error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(12), reserved.Load())
	assert.Equal(t, int32(attempts-12), full.Load())

	stored, err := repo.FindByTourAndDate(ctx, seededTenantID, tour.ID, date)
	require.NoError(t, err)
	slot, _ := stored.Slot("18:00")
	assert.Equal(t, 12, slot.Booked)
}

func TestPostgres_ConcurrentPromoRedemptions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()
	db := setupPostgres(t)
	repo := NewGormOfferRepository(db)

	limit := 5
	now := time.Now().UTC()
	o, err := offer.NewSpecialOffer(seededTenantID, offer.NewOfferParams{
		Name:          "Launch code",
		Type:          offer.OfferTypePromoCode,
		DiscountKind:  offer.DiscountFixed,
		DiscountValue: decimal.NewFromInt(15),
		PromoCode:     "launch15",
		StartDate:     now.AddDate(0, 0, -1),
		EndDate:       now.AddDate(0, 1, 0),
		UsageLimit:    &limit,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, o))

	var redeemed, exhausted atomic.Int32
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.IncrementUsage(ctx, seededTenantID, o.ID)
			switch {
			case err == nil:
				redeemed.Add(1)
			case errors.Is(err, shared.ErrOfferExhausted):
				exhausted.Add(1)
			default:
				t.Errorf("unexpected redeem error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(limit), redeemed.Load())
	assert.Equal(t, int32(20-limit), exhausted.Load())

	stored, err := repo.FindByID(ctx, seededTenantID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, limit, stored.UsedCount)
}
