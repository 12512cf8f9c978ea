package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_service/internal/domain"
)

// seedRefs creates one hotel, one room type and one amenity.
func seedRefs(t *testing.T, f *fixture) (domain.Hotel, domain.RoomType, domain.Amenity) {
	t.Helper()
	ctx := context.Background()
	a, err := f.amenities.Create(ctx, domain.AmenityInput{Name: "Minibar"})
	require.NoError(t, err)
	rt, err := f.roomTypes.Create(ctx, domain.RoomTypeInput{Name: "Deluxe", BasePrice: ptr(80.0), MaxCapacity: ptr(2), Amenities: []string{a.ID}})
	require.NoError(t, err)
	h, err := f.hotels.Create(ctx, domain.HotelInput{DisplayName: "Rooms Inn"})
	require.NoError(t, err)
	return h, rt, a
}

func roomIn(h domain.Hotel, rt domain.RoomType, number string, floor int, price float64) domain.RoomInput {
	return domain.RoomInput{HotelID: h.ID, RoomTypeID: rt.ID, RoomNumber: number, Floor: ptr(floor), Price: ptr(price)}
}

func TestRoomCreate_DefaultsAndPopulation(t *testing.T) {
	f := newFixture()
	h, rt, a := seedRefs(t, f)
	ctx := context.Background()

	in := roomIn(h, rt, " 101 ", 1, 95)
	in.Amenities = []string{a.ID}
	r, err := f.rooms.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "101", r.RoomNumber)
	assert.Equal(t, domain.RoomAvailable, r.Status)
	assert.True(t, r.Active)

	v, err := f.rooms.GetByID(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, v.Hotel)
	require.NotNil(t, v.RoomType)
	assert.Equal(t, "Rooms Inn", v.Hotel.DisplayName)
	assert.Equal(t, "Deluxe", v.RoomType.Name)
	require.Len(t, v.Amenities, 1)
	assert.Equal(t, "Minibar", v.Amenities[0].Name)
}

func TestRoomCreate_Validation(t *testing.T) {
	f := newFixture()
	h, rt, _ := seedRefs(t, f)
	ctx := context.Background()

	missingFloor := roomIn(h, rt, "1", 1, 10)
	missingFloor.Floor = nil
	badStatus := roomIn(h, rt, "1", 1, 10)
	badStatus.Status = "cleaning"

	cases := []struct {
		name string
		in   domain.RoomInput
		msg  string
	}{
		{"missing floor", missingFloor, "floor is required"},
		{"negative price", roomIn(h, rt, "1", 1, -5), "price must be >= 0"},
		{"bad status", badStatus, "status must be one of"},
		{"unknown hotel", roomIn(domain.Hotel{ID: "nope"}, rt, "1", 1, 10), "hotel nope does not exist"},
		{"unknown room type", roomIn(h, domain.RoomType{ID: "nope"}, "1", 1, 10), "room_type nope does not exist"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.rooms.Create(ctx, c.in)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestRoomCreate_DuplicateNumberConflicts(t *testing.T) {
	f := newFixture()
	h, rt, _ := seedRefs(t, f)
	ctx := context.Background()

	_, err := f.rooms.Create(ctx, roomIn(h, rt, "201", 2, 100))
	require.NoError(t, err)
	_, err = f.rooms.Create(ctx, roomIn(h, rt, "201", 2, 120))
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "room 201 already exists")
}

func TestRoomSoftDelete_HidesFromReads(t *testing.T) {
	f := newFixture()
	h, rt, _ := seedRefs(t, f)
	ctx := context.Background()

	r, err := f.rooms.Create(ctx, roomIn(h, rt, "301", 3, 100))
	require.NoError(t, err)
	_, err = f.rooms.Delete(ctx, r.ID)
	require.NoError(t, err)

	_, err = f.rooms.GetByID(ctx, r.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.rooms.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// still addressable for updates
	_, err = f.rooms.Update(ctx, r.ID, domain.RoomPatch{Active: domain.Some(true)})
	require.NoError(t, err)
	_, err = f.rooms.GetByID(ctx, r.ID)
	require.NoError(t, err)
}

func TestRoomUpdate_StatusIsFreelySettable(t *testing.T) {
	f := newFixture()
	h, rt, _ := seedRefs(t, f)
	ctx := context.Background()

	r, err := f.rooms.Create(ctx, roomIn(h, rt, "1", 1, 10))
	require.NoError(t, err)

	for _, s := range []domain.RoomStatus{domain.RoomMaintenance, domain.RoomAvailable, domain.RoomReserved, domain.RoomOccupied} {
		v, err := f.rooms.Update(ctx, r.ID, domain.RoomPatch{Status: domain.Some(s)})
		require.NoError(t, err)
		assert.Equal(t, s, v.Status)
	}

	_, err = f.rooms.Update(ctx, r.ID, domain.RoomPatch{Status: domain.Some(domain.RoomStatus("gone"))})
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.rooms.Update(ctx, r.ID, domain.RoomPatch{HotelID: domain.Some("missing")})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestRoomQueries_FixedSorts(t *testing.T) {
	f := newFixture()
	h, _, _ := seedRefs(t, f)
	ctx := context.Background()

	_, err := f.rooms.ListByHotel(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomsByFloor, f.store.lastRoomQuery.Sort)
	assert.Equal(t, h.ID, f.store.lastRoomQuery.HotelID)
	assert.True(t, f.store.lastRoomQuery.ActiveOnly)

	_, err = f.rooms.Search(ctx, domain.RoomQuery{MinPrice: ptr(10.0)})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomsByPrice, f.store.lastRoomQuery.Sort)
	assert.True(t, f.store.lastRoomQuery.ActiveOnly)

	_, err = f.rooms.Search(ctx, domain.RoomQuery{Status: "broken"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestPopulator_BatchesLookups(t *testing.T) {
	f := newFixture()
	h, rt, a := seedRefs(t, f)
	ctx := context.Background()

	for _, n := range []string{"1", "2", "3", "4"} {
		in := roomIn(h, rt, n, 1, 10)
		in.Amenities = []string{a.ID}
		_, err := f.rooms.Create(ctx, in)
		require.NoError(t, err)
	}
	f.store.findCalls = map[string]int{}

	views, err := f.rooms.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 4)
	assert.Equal(t, 1, f.store.findCalls["hotels"])
	assert.Equal(t, 1, f.store.findCalls["room_types"])
	assert.Equal(t, 1, f.store.findCalls["amenities"])
}

func TestPopulator_DropsDanglingReferences(t *testing.T) {
	f := newFixture()
	h, rt, _ := seedRefs(t, f)
	ctx := context.Background()

	r, err := f.rooms.Create(ctx, roomIn(h, rt, "9", 1, 10))
	require.NoError(t, err)
	require.NoError(t, f.hotels.Delete(ctx, h.ID))

	v, err := f.rooms.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Nil(t, v.Hotel)
	assert.NotNil(t, v.RoomType)
	assert.NotNil(t, v.Amenities)
}
