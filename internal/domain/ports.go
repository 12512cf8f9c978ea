package domain

import "context"

type HotelRepository interface {
	InsertHotel(ctx context.Context, h Hotel) error
	GetHotel(ctx context.Context, id string) (Hotel, error)
	GetHotelBySlug(ctx context.Context, slug string, activeOnly bool) (Hotel, error)
	// SlugTaken ignores the hotel identified by exceptID (empty for creates).
	SlugTaken(ctx context.Context, slug, exceptID string) (bool, error)
	ListHotels(ctx context.Context, q HotelQuery) ([]Hotel, error)
	FindHotels(ctx context.Context, ids []string) ([]Hotel, error)
	UpdateHotel(ctx context.Context, id string, p HotelPatch) (Hotel, error)
	SetHotelActive(ctx context.Context, id string, active bool) (Hotel, error)
	DeleteHotel(ctx context.Context, id string) (Hotel, error)
}

type RoomRepository interface {
	InsertRoom(ctx context.Context, r Room) error
	GetRoom(ctx context.Context, id string, activeOnly bool) (Room, error)
	ListRooms(ctx context.Context, q RoomQuery) ([]Room, error)
	UpdateRoom(ctx context.Context, id string, p RoomPatch) (Room, error)
	SetRoomActive(ctx context.Context, id string, active bool) (Room, error)
}

type RoomTypeRepository interface {
	InsertRoomType(ctx context.Context, rt RoomType) error
	GetRoomType(ctx context.Context, id string, activeOnly bool) (RoomType, error)
	ListRoomTypes(ctx context.Context, activeOnly bool) ([]RoomType, error)
	FindRoomTypes(ctx context.Context, ids []string) ([]RoomType, error)
	UpdateRoomType(ctx context.Context, id string, p RoomTypePatch) (RoomType, error)
	SetRoomTypeActive(ctx context.Context, id string, active bool) (RoomType, error)
}

type AmenityRepository interface {
	InsertAmenity(ctx context.Context, a Amenity) error
	GetAmenity(ctx context.Context, id string, activeOnly bool) (Amenity, error)
	ListAmenities(ctx context.Context, activeOnly bool) ([]Amenity, error)
	FindAmenities(ctx context.Context, ids []string) ([]Amenity, error)
	UpdateAmenity(ctx context.Context, id string, p AmenityPatch) (Amenity, error)
	SetAmenityActive(ctx context.Context, id string, active bool) (Amenity, error)
}

// ImageStore is the external image-management service. Calls are best-effort:
// callers inspect the result and decide whether it matters.
type ImageStore interface {
	DeleteImage(ctx context.Context, url string) (PurgeResult, error)
	DeleteImages(ctx context.Context, urls []string) (PurgeResult, error)
}

type PurgeResult struct {
	SuccessCount int `json:"successCount"`
	FailedCount  int `json:"failedCount"`
	Skipped      int `json:"-"` // not sent (no collaborator configured)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
