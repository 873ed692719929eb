package services

import (
	"context"
	"testing"
	"time"

	"bikie/internal/domain"
	"bikie/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *repositories.MemoryStore {
	t.Helper()
	seed, err := repositories.DefaultSeed()
	require.NoError(t, err)
	return repositories.NewMemoryStore(seed)
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 18, 8, 30, 0, 0, time.UTC)
}

func newCatalog(t *testing.T) (CatalogService, *repositories.MemoryStore) {
	store := newTestStore(t)
	return CatalogService{Vehicles: store, Testimonials: store, Now: fixedNow, Location: time.UTC}, store
}

func TestCatalogListVehiclesFiltersAndSorts(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	all, err := svc.ListVehicles(ctx, domain.Criteria{})
	require.NoError(t, err)
	assert.Len(t, all, 9)
	assert.Equal(t, "bike-1", all[0].ID)

	cars, err := svc.ListVehicles(ctx, domain.Criteria{Filter: "car", Sort: domain.SortPriceHigh})
	require.NoError(t, err)
	require.Len(t, cars, 4)
	assert.Equal(t, "car-4", cars[0].ID)
	assert.Equal(t, "car-3", cars[3].ID)

	honda, err := svc.ListVehicles(ctx, domain.Criteria{Search: "HONDA"})
	require.NoError(t, err)
	ids := []string{}
	for _, v := range honda {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"bike-1", "bike-5"}, ids)
}

func TestCatalogHomeShowsFeaturedAvailable(t *testing.T) {
	svc, store := newCatalog(t)
	ctx := context.Background()

	home, err := svc.Home(ctx)
	require.NoError(t, err)
	require.Len(t, home.Featured, 3)
	assert.Equal(t, "bike-2", home.Featured[0].ID)
	assert.Len(t, home.Testimonials, 3)

	v, err := store.GetVehicle(ctx, "bike-2")
	require.NoError(t, err)
	v.Available = false
	require.NoError(t, store.SaveVehicle(ctx, v))

	featured, err := svc.FeaturedVehicles(ctx, 0)
	require.NoError(t, err)
	for _, f := range featured {
		assert.NotEqual(t, "bike-2", f.ID)
		assert.True(t, f.Available)
	}
}

func TestCatalogBookingOptions(t *testing.T) {
	svc, store := newCatalog(t)
	ctx := context.Background()

	opts, err := svc.BookingOptions(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, opts.Selected)
	assert.Equal(t, "2026-10-18", opts.MinDate)
	assert.Equal(t, "2027-01-18", opts.MaxDate)
	assert.Equal(t, PickupTimes, opts.PickupTimes)

	opts, err = svc.BookingOptions(ctx, "bike-2")
	require.NoError(t, err)
	require.NotNil(t, opts.Selected)
	assert.Len(t, opts.Slots, 3)

	_, err = svc.BookingOptions(ctx, "nope")
	assert.True(t, domain.IsNotFound(err))

	v, err := store.GetVehicle(ctx, "car-1")
	require.NoError(t, err)
	v.Available = false
	require.NoError(t, store.SaveVehicle(ctx, v))
	_, err = svc.BookingOptions(ctx, "car-1")
	assert.True(t, domain.IsConflict(err))
}

func TestCatalogQuote(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	q, _, err := svc.Quote(ctx, "bike-2", domain.HourlySelection(3))
	require.NoError(t, err)
	assert.Equal(t, 300.0, q.Total)

	q, _, err = svc.Quote(ctx, "bike-2", domain.SlotSelection(3, 250))
	require.NoError(t, err)
	assert.Equal(t, 250.0, q.Total)
	assert.Equal(t, 50.0, q.Savings)

	_, _, err = svc.Quote(ctx, "bike-2", domain.SlotSelection(2, 150))
	assert.True(t, domain.IsValidation(err))
}
