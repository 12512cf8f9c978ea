package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hotel_service/internal/domain"
)

// ---- room types ----

func (s *Store) InsertRoomType(ctx context.Context, rt domain.RoomType) error {
	return insertOne(ctx, s.roomTypes, rt)
}

func (s *Store) GetRoomType(ctx context.Context, id string, activeOnly bool) (domain.RoomType, error) {
	return findOne[domain.RoomType](ctx, s.roomTypes, "get", append(activeFilter(activeOnly), byID(id)...))
}

func (s *Store) ListRoomTypes(ctx context.Context, activeOnly bool) ([]domain.RoomType, error) {
	return findMany[domain.RoomType](ctx, s.roomTypes, "list", activeFilter(activeOnly), newestFirst)
}

func (s *Store) FindRoomTypes(ctx context.Context, ids []string) ([]domain.RoomType, error) {
	return findMany[domain.RoomType](ctx, s.roomTypes, "find_ids", inIDs(ids), nil)
}

func (s *Store) UpdateRoomType(ctx context.Context, id string, p domain.RoomTypePatch) (domain.RoomType, error) {
	return updateOne[domain.RoomType](ctx, s.roomTypes, "update", id, roomTypeUpdate(p, time.Now().UTC()))
}

func (s *Store) SetRoomTypeActive(ctx context.Context, id string, active bool) (domain.RoomType, error) {
	return setActive[domain.RoomType](ctx, s.roomTypes, id, active)
}

// ---- amenities ----

func (s *Store) InsertAmenity(ctx context.Context, a domain.Amenity) error {
	return insertOne(ctx, s.amenities, a)
}

func (s *Store) GetAmenity(ctx context.Context, id string, activeOnly bool) (domain.Amenity, error) {
	return findOne[domain.Amenity](ctx, s.amenities, "get", append(activeFilter(activeOnly), byID(id)...))
}

func (s *Store) ListAmenities(ctx context.Context, activeOnly bool) ([]domain.Amenity, error) {
	return findMany[domain.Amenity](ctx, s.amenities, "list", activeFilter(activeOnly), bson.D{{Key: "name", Value: 1}})
}

func (s *Store) FindAmenities(ctx context.Context, ids []string) ([]domain.Amenity, error) {
	return findMany[domain.Amenity](ctx, s.amenities, "find_ids", inIDs(ids), nil)
}

func (s *Store) UpdateAmenity(ctx context.Context, id string, p domain.AmenityPatch) (domain.Amenity, error) {
	return updateOne[domain.Amenity](ctx, s.amenities, "update", id, amenityUpdate(p, time.Now().UTC()))
}

func (s *Store) SetAmenityActive(ctx context.Context, id string, active bool) (domain.Amenity, error) {
	return setActive[domain.Amenity](ctx, s.amenities, id, active)
}

var (
	_ domain.HotelRepository    = (*Store)(nil)
	_ domain.RoomRepository     = (*Store)(nil)
	_ domain.RoomTypeRepository = (*Store)(nil)
	_ domain.AmenityRepository  = (*Store)(nil)
)
