// Package mongo persists hotels, rooms, room types and amenities in MongoDB.
// Documents are addressed by document_id (a UUID string); the driver's _id is never exposed.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"hotel_service/internal/adapters/observability"
)

const (
	hotelsColl    = "hotels"
	roomsColl     = "rooms"
	roomTypesColl = "room_types"
	amenitiesColl = "amenities"
)

type Store struct {
	db        *mongodrv.Database
	hotels    *mongodrv.Collection
	rooms     *mongodrv.Collection
	roomTypes *mongodrv.Collection
	amenities *mongodrv.Collection
}

func New(db *mongodrv.Database) *Store {
	return &Store{
		db:        db,
		hotels:    db.Collection(hotelsColl),
		rooms:     db.Collection(roomsColl),
		roomTypes: db.Collection(roomTypesColl),
		amenities: db.Collection(amenitiesColl),
	}
}

// Connect dials uri and pings the primary within timeout.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongodrv.Client, error) {
	client, err := mongodrv.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// EnsureIndexes creates the unique and lookup indexes. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	idx := map[*mongodrv.Collection][]mongodrv.IndexModel{
		s.hotels: {
			uniqueIndex("hotels_document_id_unique", bson.D{{Key: "document_id", Value: 1}}),
			uniqueIndex("hotels_slug_unique", bson.D{{Key: "slug", Value: 1}}),
			{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "latitude", Value: 1}, {Key: "longitude", Value: 1}}},
		},
		s.rooms: {
			uniqueIndex("rooms_document_id_unique", bson.D{{Key: "document_id", Value: 1}}),
			uniqueIndex("rooms_hotel_room_number_unique", bson.D{{Key: "hotel", Value: 1}, {Key: "room_number", Value: 1}}),
			{Keys: bson.D{{Key: "hotel", Value: 1}, {Key: "floor", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
		},
		s.roomTypes: {
			uniqueIndex("room_types_document_id_unique", bson.D{{Key: "document_id", Value: 1}}),
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		s.amenities: {
			uniqueIndex("amenities_document_id_unique", bson.D{{Key: "document_id", Value: 1}}),
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
	}
	for c, models := range idx {
		if _, err := c.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", c.Name(), err)
		}
	}
	return nil
}

func uniqueIndex(name string, keys bson.D) mongodrv.IndexModel {
	return mongodrv.IndexModel{Keys: keys, Options: options.Index().SetName(name).SetUnique(true)}
}

func byID(id string) bson.D { return bson.D{{Key: "document_id", Value: id}} }

func observe(coll, op string, start time.Time, err error) {
	observability.ObserveStore(coll, op, err, time.Since(start))
}

func findOne[T any](ctx context.Context, c *mongodrv.Collection, op string, filter bson.D) (T, error) {
	start := time.Now()
	var out T
	err := mapErr(c.Name(), c.FindOne(ctx, filter).Decode(&out))
	observe(c.Name(), op, start, err)
	return out, err
}

func findMany[T any](ctx context.Context, c *mongodrv.Collection, op string, filter bson.D, sort bson.D) ([]T, error) {
	start := time.Now()
	out, err := func() ([]T, error) {
		opts := options.Find()
		if len(sort) > 0 {
			opts.SetSort(sort)
		}
		cur, err := c.Find(ctx, filter, opts)
		if err != nil {
			return nil, err
		}
		var out []T
		if err := cur.All(ctx, &out); err != nil {
			return nil, err
		}
		if out == nil {
			out = []T{}
		}
		return out, nil
	}()
	err = mapErr(c.Name(), err)
	observe(c.Name(), op, start, err)
	return out, err
}

func insertOne(ctx context.Context, c *mongodrv.Collection, doc any) error {
	start := time.Now()
	_, err := c.InsertOne(ctx, doc)
	err = mapErr(c.Name(), err)
	observe(c.Name(), "insert", start, err)
	return err
}

// updateOne applies update to the document with the given id and returns it post-update.
func updateOne[T any](ctx context.Context, c *mongodrv.Collection, op, id string, update bson.D) (T, error) {
	start := time.Now()
	var out T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := mapErr(c.Name(), c.FindOneAndUpdate(ctx, byID(id), update, opts).Decode(&out))
	observe(c.Name(), op, start, err)
	return out, err
}

func setActive[T any](ctx context.Context, c *mongodrv.Collection, id string, active bool) (T, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "is_active", Value: active},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	return updateOne[T](ctx, c, "set_active", id, update)
}
