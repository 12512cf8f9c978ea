package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"hotel_service/internal/app"
	"hotel_service/internal/domain"
)

// ---- in-memory store ----

type memStore struct {
	mu        sync.Mutex
	hotels    map[string]domain.Hotel
	rooms     map[string]domain.Room
	roomTypes map[string]domain.RoomType
	amenities map[string]domain.Amenity

	// beforeHotelWrite runs ahead of every hotel insert/update; a non-nil error is returned as-is.
	beforeHotelWrite func(h domain.Hotel) error
	hotelWrites      int
	findCalls        map[string]int
	lastRoomQuery    domain.RoomQuery
}

func newMemStore() *memStore {
	return &memStore{
		hotels:    map[string]domain.Hotel{},
		rooms:     map[string]domain.Room{},
		roomTypes: map[string]domain.RoomType{},
		amenities: map[string]domain.Amenity{},
		findCalls: map[string]int{},
	}
}

func notFound(kind, id string) error { return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound) }

func (m *memStore) slugUsed(slug, exceptID string) bool {
	for _, h := range m.hotels {
		if h.Slug == slug && h.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *memStore) InsertHotel(_ context.Context, h domain.Hotel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotelWrites++
	if m.beforeHotelWrite != nil {
		if err := m.beforeHotelWrite(h); err != nil {
			return err
		}
	}
	if m.slugUsed(h.Slug, "") {
		return domain.ErrSlugTaken
	}
	m.hotels[h.ID] = h
	return nil
}

func (m *memStore) GetHotel(_ context.Context, id string) (domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hotels[id]
	if !ok {
		return domain.Hotel{}, notFound("hotel", id)
	}
	return h, nil
}

func (m *memStore) GetHotelBySlug(_ context.Context, slug string, activeOnly bool) (domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.hotels {
		if h.Slug == slug && (!activeOnly || h.Active) {
			return h, nil
		}
	}
	return domain.Hotel{}, notFound("hotel slug", slug)
}

func (m *memStore) SlugTaken(_ context.Context, slug, exceptID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slugUsed(slug, exceptID), nil
}

// ListHotels honors ActiveOnly and the price bounds; other filters are left to the store tests.
func (m *memStore) ListHotels(_ context.Context, q domain.HotelQuery) ([]domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Hotel
	for _, h := range m.hotels {
		if q.ActiveOnly && !h.Active {
			continue
		}
		if q.MinPrice != nil && h.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && h.Price > *q.MaxPrice {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) FindHotels(_ context.Context, ids []string) ([]domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls["hotels"]++
	var out []domain.Hotel
	for _, id := range ids {
		if h, ok := m.hotels[id]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memStore) UpdateHotel(_ context.Context, id string, p domain.HotelPatch) (domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hotels[id]
	if !ok {
		return domain.Hotel{}, notFound("hotel", id)
	}
	p.Apply(&h)
	m.hotelWrites++
	if m.beforeHotelWrite != nil {
		if err := m.beforeHotelWrite(h); err != nil {
			return domain.Hotel{}, err
		}
	}
	if m.slugUsed(h.Slug, id) {
		return domain.Hotel{}, domain.ErrSlugTaken
	}
	h.UpdatedAt = time.Now().UTC()
	m.hotels[id] = h
	return h, nil
}

func (m *memStore) SetHotelActive(_ context.Context, id string, active bool) (domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hotels[id]
	if !ok {
		return domain.Hotel{}, notFound("hotel", id)
	}
	h.Active = active
	m.hotels[id] = h
	return h, nil
}

func (m *memStore) DeleteHotel(_ context.Context, id string) (domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hotels[id]
	if !ok {
		return domain.Hotel{}, notFound("hotel", id)
	}
	delete(m.hotels, id)
	return h, nil
}

func (m *memStore) InsertRoom(_ context.Context, r domain.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.rooms {
		if o.HotelID == r.HotelID && o.RoomNumber == r.RoomNumber {
			return fmt.Errorf("rooms: duplicate key: %w", domain.ErrConflict)
		}
	}
	m.rooms[r.ID] = r
	return nil
}

func (m *memStore) GetRoom(_ context.Context, id string, activeOnly bool) (domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok || (activeOnly && !r.Active) {
		return domain.Room{}, notFound("room", id)
	}
	return r, nil
}

func (m *memStore) ListRooms(_ context.Context, q domain.RoomQuery) ([]domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastRoomQuery = q
	var out []domain.Room
	for _, r := range m.rooms {
		if q.ActiveOnly && !r.Active {
			continue
		}
		if q.HotelID != "" && r.HotelID != q.HotelID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (m *memStore) UpdateRoom(_ context.Context, id string, p domain.RoomPatch) (domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.Room{}, notFound("room", id)
	}
	p.Apply(&r)
	for _, o := range m.rooms {
		if o.ID != id && o.HotelID == r.HotelID && o.RoomNumber == r.RoomNumber {
			return domain.Room{}, fmt.Errorf("rooms: duplicate key: %w", domain.ErrConflict)
		}
	}
	m.rooms[id] = r
	return r, nil
}

func (m *memStore) SetRoomActive(_ context.Context, id string, active bool) (domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.Room{}, notFound("room", id)
	}
	r.Active = active
	m.rooms[id] = r
	return r, nil
}

func (m *memStore) InsertRoomType(_ context.Context, rt domain.RoomType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roomTypes[rt.ID] = rt
	return nil
}

func (m *memStore) GetRoomType(_ context.Context, id string, activeOnly bool) (domain.RoomType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.roomTypes[id]
	if !ok || (activeOnly && !rt.Active) {
		return domain.RoomType{}, notFound("room type", id)
	}
	return rt, nil
}

func (m *memStore) ListRoomTypes(_ context.Context, activeOnly bool) ([]domain.RoomType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.RoomType
	for _, rt := range m.roomTypes {
		if !activeOnly || rt.Active {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (m *memStore) FindRoomTypes(_ context.Context, ids []string) ([]domain.RoomType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls["room_types"]++
	var out []domain.RoomType
	for _, id := range ids {
		if rt, ok := m.roomTypes[id]; ok {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (m *memStore) UpdateRoomType(_ context.Context, id string, p domain.RoomTypePatch) (domain.RoomType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.roomTypes[id]
	if !ok {
		return domain.RoomType{}, notFound("room type", id)
	}
	p.Apply(&rt)
	m.roomTypes[id] = rt
	return rt, nil
}

func (m *memStore) SetRoomTypeActive(_ context.Context, id string, active bool) (domain.RoomType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.roomTypes[id]
	if !ok {
		return domain.RoomType{}, notFound("room type", id)
	}
	rt.Active = active
	m.roomTypes[id] = rt
	return rt, nil
}

func (m *memStore) InsertAmenity(_ context.Context, a domain.Amenity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.amenities[a.ID] = a
	return nil
}

func (m *memStore) GetAmenity(_ context.Context, id string, activeOnly bool) (domain.Amenity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.amenities[id]
	if !ok || (activeOnly && !a.Active) {
		return domain.Amenity{}, notFound("amenity", id)
	}
	return a, nil
}

func (m *memStore) ListAmenities(_ context.Context, activeOnly bool) ([]domain.Amenity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Amenity
	for _, a := range m.amenities {
		if !activeOnly || a.Active {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) FindAmenities(_ context.Context, ids []string) ([]domain.Amenity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls["amenities"]++
	var out []domain.Amenity
	for _, id := range ids {
		if a, ok := m.amenities[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) UpdateAmenity(_ context.Context, id string, p domain.AmenityPatch) (domain.Amenity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.amenities[id]
	if !ok {
		return domain.Amenity{}, notFound("amenity", id)
	}
	p.Apply(&a)
	m.amenities[id] = a
	return a, nil
}

func (m *memStore) SetAmenityActive(_ context.Context, id string, active bool) (domain.Amenity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.amenities[id]
	if !ok {
		return domain.Amenity{}, notFound("amenity", id)
	}
	a.Active = active
	m.amenities[id] = a
	return a, nil
}

// ---- image store ----

type fakeImages struct {
	mu     sync.Mutex
	calls  [][]string
	single int
	ctxErr error
	res    domain.PurgeResult
	err    error
}

func (f *fakeImages) DeleteImage(ctx context.Context, url string) (domain.PurgeResult, error) {
	f.mu.Lock()
	f.single++
	f.mu.Unlock()
	return f.DeleteImages(ctx, []string{url})
}

func (f *fakeImages) DeleteImages(ctx context.Context, urls []string) (domain.PurgeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, urls)
	f.ctxErr = ctx.Err()
	return f.res, f.err
}

// ---- cache ----

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	gets  int
	hits  int
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

// ---- wiring ----

type fixture struct {
	store     *memStore
	images    *fakeImages
	cache     *fakeCache
	hotels    *app.HotelService
	rooms     *app.RoomService
	roomTypes *app.RoomTypeService
	amenities *app.AmenityService
}

func newFixture() *fixture {
	st := newMemStore()
	img := &fakeImages{}
	c := newFakeCache()
	pop := app.NewPopulator(st, st, st)
	return &fixture{
		store:     st,
		images:    img,
		cache:     c,
		hotels:    app.NewHotelService(st, img, pop, c, 10*time.Minute),
		rooms:     app.NewRoomService(st, st, st, pop),
		roomTypes: app.NewRoomTypeService(st, pop),
		amenities: app.NewAmenityService(st),
	}
}

func ptr[T any](v T) *T { return &v }

// newFixtureWithTTL builds a second hotel service over the fixture's store and cache.
func newFixtureWithTTL(f *fixture, ttl time.Duration) *app.HotelService {
	return app.NewHotelService(f.store, f.images, app.NewPopulator(f.store, f.store, f.store), f.cache, ttl)
}
