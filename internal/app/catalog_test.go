package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_service/internal/domain"
)

func TestAmenityLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a, err := f.amenities.Create(ctx, domain.AmenityInput{Name: "  Pool "})
	require.NoError(t, err)
	assert.Equal(t, "Pool", a.Name)
	assert.Equal(t, domain.DefaultAmenityIcon, a.Icon)

	_, err = f.amenities.Create(ctx, domain.AmenityInput{Name: ""})
	require.ErrorIs(t, err, domain.ErrValidation)

	up, err := f.amenities.Update(ctx, a.ID, domain.AmenityPatch{Icon: domain.Some("pool.svg")})
	require.NoError(t, err)
	assert.Equal(t, "pool.svg", up.Icon)
	assert.Equal(t, "Pool", up.Name)

	_, err = f.amenities.Update(ctx, a.ID, domain.AmenityPatch{Name: domain.Cleared[string]()})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.amenities.Delete(ctx, a.ID)
	require.NoError(t, err)
	_, err = f.amenities.GetByID(ctx, a.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	list, err := f.amenities.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.amenities.Delete(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoomTypeLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	wifi, err := f.amenities.Create(ctx, domain.AmenityInput{Name: "Wifi"})
	require.NoError(t, err)

	_, err = f.roomTypes.Create(ctx, domain.RoomTypeInput{Name: "Suite", BasePrice: ptr(100.0)})
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.roomTypes.Create(ctx, domain.RoomTypeInput{Name: "Suite", BasePrice: ptr(100.0), MaxCapacity: ptr(0)})
	require.ErrorIs(t, err, domain.ErrValidation)

	rt, err := f.roomTypes.Create(ctx, domain.RoomTypeInput{Name: "Suite", BasePrice: ptr(100.0), MaxCapacity: ptr(4), Amenities: []string{wifi.ID}})
	require.NoError(t, err)

	v, err := f.roomTypes.GetByID(ctx, rt.ID)
	require.NoError(t, err)
	require.Len(t, v.Amenities, 1)
	assert.Equal(t, "Wifi", v.Amenities[0].Name)

	up, err := f.roomTypes.Update(ctx, rt.ID, domain.RoomTypePatch{BasePrice: domain.Some(150.0)})
	require.NoError(t, err)
	assert.Equal(t, 150.0, up.BasePrice)
	assert.Equal(t, 4, up.MaxCapacity)

	_, err = f.roomTypes.Delete(ctx, rt.ID)
	require.NoError(t, err)
	_, err = f.roomTypes.GetByID(ctx, rt.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	list, err := f.roomTypes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
