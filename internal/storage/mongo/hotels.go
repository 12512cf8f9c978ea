package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"hotel_service/internal/domain"
)

func (s *Store) InsertHotel(ctx context.Context, h domain.Hotel) error {
	return insertOne(ctx, s.hotels, h)
}

func (s *Store) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	return findOne[domain.Hotel](ctx, s.hotels, "get", byID(id))
}

func (s *Store) GetHotelBySlug(ctx context.Context, slug string, activeOnly bool) (domain.Hotel, error) {
	f := append(activeFilter(activeOnly), bson.E{Key: "slug", Value: slug})
	return findOne[domain.Hotel](ctx, s.hotels, "get_by_slug", f)
}

func (s *Store) SlugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	start := time.Now()
	f := bson.D{{Key: "slug", Value: slug}}
	if exceptID != "" {
		f = append(f, bson.E{Key: "document_id", Value: bson.D{{Key: "$ne", Value: exceptID}}})
	}
	n, err := s.hotels.CountDocuments(ctx, f, options.Count().SetLimit(1))
	err = mapErr(hotelsColl, err)
	observe(hotelsColl, "slug_probe", start, err)
	return n > 0, err
}

func (s *Store) ListHotels(ctx context.Context, q domain.HotelQuery) ([]domain.Hotel, error) {
	return findMany[domain.Hotel](ctx, s.hotels, "list", hotelFilter(q), newestFirst)
}

func (s *Store) FindHotels(ctx context.Context, ids []string) ([]domain.Hotel, error) {
	return findMany[domain.Hotel](ctx, s.hotels, "find_ids", inIDs(ids), nil)
}

func (s *Store) UpdateHotel(ctx context.Context, id string, p domain.HotelPatch) (domain.Hotel, error) {
	return updateOne[domain.Hotel](ctx, s.hotels, "update", id, hotelUpdate(p, time.Now().UTC()))
}

func (s *Store) SetHotelActive(ctx context.Context, id string, active bool) (domain.Hotel, error) {
	return setActive[domain.Hotel](ctx, s.hotels, id, active)
}

func (s *Store) DeleteHotel(ctx context.Context, id string) (domain.Hotel, error) {
	start := time.Now()
	var h domain.Hotel
	err := mapErr(hotelsColl, s.hotels.FindOneAndDelete(ctx, byID(id)).Decode(&h))
	observe(hotelsColl, "delete", start, err)
	return h, err
}
