package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"gopkg.in/yaml.v3"

	"hotel_service/internal/domain"
)

// SeedFile is the YAML catalog loaded by cmd/seeder. Rooms and room types refer to
// amenities and room types by name; the seeder resolves names to ids.
type SeedFile struct {
	Amenities []SeedAmenity  `yaml:"amenities"`
	RoomTypes []SeedRoomType `yaml:"room_types"`
	Hotels    []SeedHotel    `yaml:"hotels"`
}

type SeedAmenity struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Icon        *string `yaml:"icon"`
}

type SeedRoomType struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	BasePrice   float64  `yaml:"base_price"`
	MaxCapacity int      `yaml:"max_capacity"`
	Amenities   []string `yaml:"amenities"`
}

type SeedHotel struct {
	DisplayName   string     `yaml:"displayName"`
	Description   *string    `yaml:"description"`
	Region        string     `yaml:"region"`
	Latitude      *float64   `yaml:"latitude"`
	Longitude     *float64   `yaml:"longitude"`
	Price         *float64   `yaml:"price"`
	StarRating    *float64   `yaml:"starRating"`
	ImageURL      *string    `yaml:"imageUrl"`
	ImageURLs     []string   `yaml:"imageUrls"`
	HotelFeatures []string   `yaml:"hotelFeatures"`
	Amenities     []string   `yaml:"amenities"`
	Rooms         []SeedRoom `yaml:"rooms"`
}

type SeedRoom struct {
	RoomNumber string   `yaml:"room_number"`
	Floor      int      `yaml:"floor"`
	Price      float64  `yaml:"price"`
	RoomType   string   `yaml:"room_type"`
	Status     string   `yaml:"status"`
	Amenities  []string `yaml:"amenities"`
}

type SeedReport struct {
	Amenities    int
	RoomTypes    int
	Hotels       int
	Rooms        int
	FailedHotels int
	FailedRooms  int
}

// ParseSeedFile decodes a seed catalog, rejecting unknown keys.
func ParseSeedFile(r io.Reader) (SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return SeedFile{}, fmt.Errorf("decode seed file: %w", err)
	}
	return f, nil
}

type Seeder struct {
	hotels    *HotelService
	rooms     *RoomService
	roomTypes *RoomTypeService
	amenities *AmenityService
	workers   int
}

func NewSeeder(h *HotelService, r *RoomService, rt *RoomTypeService, a *AmenityService, workers int) *Seeder {
	if workers < 1 {
		workers = 1
	}
	return &Seeder{hotels: h, rooms: r, roomTypes: rt, amenities: a, workers: workers}
}

// Run creates amenities and room types in order, then hotels (with their rooms) concurrently.
// Catalog entries (amenities, room types) must all succeed; hotel failures are counted.
func (s *Seeder) Run(ctx context.Context, f SeedFile) (SeedReport, error) {
	var rep SeedReport

	amenityIDs := make(map[string]string, len(f.Amenities))
	for _, a := range f.Amenities {
		created, err := s.amenities.Create(ctx, domain.AmenityInput{Name: a.Name, Description: a.Description, Icon: a.Icon})
		if err != nil {
			return rep, fmt.Errorf("seed amenity %q: %w", a.Name, err)
		}
		amenityIDs[created.Name] = created.ID
		rep.Amenities++
	}

	typeIDs := make(map[string]string, len(f.RoomTypes))
	for _, rt := range f.RoomTypes {
		ids, err := resolveNames(amenityIDs, rt.Amenities)
		if err != nil {
			return rep, fmt.Errorf("seed room type %q: %w", rt.Name, err)
		}
		created, err := s.roomTypes.Create(ctx, domain.RoomTypeInput{
			Name:        rt.Name,
			Description: rt.Description,
			BasePrice:   &rt.BasePrice,
			MaxCapacity: &rt.MaxCapacity,
			Amenities:   ids,
		})
		if err != nil {
			return rep, fmt.Errorf("seed room type %q: %w", rt.Name, err)
		}
		typeIDs[created.Name] = created.ID
		rep.RoomTypes++
	}

	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup
	var hotels, rooms, failedHotels, failedRooms atomic.Int64

	for _, h := range f.Hotels {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return rep, err
		}
		wg.Add(1)
		go func(h SeedHotel) {
			defer wg.Done()
			defer sem.Release(1)

			ok, failed, err := s.seedHotel(ctx, h, amenityIDs, typeIDs)
			rooms.Add(int64(ok))
			failedRooms.Add(int64(failed))
			if err != nil {
				failedHotels.Add(1)
				log.Warn().Str("hotel", h.DisplayName).Err(err).Msg("seed hotel failed")
				return
			}
			hotels.Add(1)
		}(h)
	}
	wg.Wait()

	rep.Hotels = int(hotels.Load())
	rep.Rooms = int(rooms.Load())
	rep.FailedHotels = int(failedHotels.Load())
	rep.FailedRooms = int(failedRooms.Load())
	return rep, nil
}

func (s *Seeder) seedHotel(ctx context.Context, h SeedHotel, amenityIDs, typeIDs map[string]string) (okRooms, failedRooms int, err error) {
	ids, err := resolveNames(amenityIDs, h.Amenities)
	if err != nil {
		return 0, 0, err
	}
	created, err := s.hotels.Create(ctx, domain.HotelInput{
		DisplayName:   h.DisplayName,
		Description:   h.Description,
		Region:        h.Region,
		Latitude:      h.Latitude,
		Longitude:     h.Longitude,
		Price:         h.Price,
		StarRating:    h.StarRating,
		ImageURL:      h.ImageURL,
		ImageURLs:     h.ImageURLs,
		HotelFeatures: h.HotelFeatures,
		Amenities:     ids,
	})
	if err != nil {
		return 0, 0, err
	}

	for _, r := range h.Rooms {
		if err := s.seedRoom(ctx, created.ID, r, amenityIDs, typeIDs); err != nil {
			failedRooms++
			log.Warn().Str("hotel_id", created.ID).Str("room_number", r.RoomNumber).Err(err).Msg("seed room failed")
			continue
		}
		okRooms++
	}
	log.Info().Str("hotel_id", created.ID).Str("slug", created.Slug).Int("rooms", okRooms).Msg("hotel seeded")
	return okRooms, failedRooms, nil
}

func (s *Seeder) seedRoom(ctx context.Context, hotelID string, r SeedRoom, amenityIDs, typeIDs map[string]string) error {
	typeID, ok := typeIDs[r.RoomType]
	if !ok {
		return domain.Invalid("unknown room type %q", r.RoomType)
	}
	ids, err := resolveNames(amenityIDs, r.Amenities)
	if err != nil {
		return err
	}
	floor, price := r.Floor, r.Price
	_, err = s.rooms.Create(ctx, domain.RoomInput{
		HotelID:    hotelID,
		RoomTypeID: typeID,
		RoomNumber: r.RoomNumber,
		Floor:      &floor,
		Price:      &price,
		Status:     domain.RoomStatus(r.Status),
		Amenities:  ids,
	})
	return err
}

func resolveNames(idx map[string]string, names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		id, ok := idx[n]
		if !ok {
			return nil, domain.Invalid("unknown amenity %q", n)
		}
		out = append(out, id)
	}
	return out, nil
}
