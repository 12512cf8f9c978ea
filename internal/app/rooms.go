package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_service/internal/domain"
)

type RoomService struct {
	repo      domain.RoomRepository
	hotels    domain.HotelRepository
	roomTypes domain.RoomTypeRepository
	pop       *Populator
	now       func() time.Time
}

func NewRoomService(r domain.RoomRepository, h domain.HotelRepository, rt domain.RoomTypeRepository, pop *Populator) *RoomService {
	return &RoomService{repo: r, hotels: h, roomTypes: rt, pop: pop, now: time.Now}
}

func (s *RoomService) Create(ctx context.Context, in domain.RoomInput) (domain.Room, error) {
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	if err := check(in); err != nil {
		return domain.Room{}, err
	}
	if in.Status == "" {
		in.Status = domain.RoomAvailable
	}

	now := s.now().UTC()
	r := domain.Room{
		ID:         uuid.NewString(),
		HotelID:    in.HotelID,
		RoomTypeID: in.RoomTypeID,
		RoomNumber: in.RoomNumber,
		Floor:      *in.Floor,
		Price:      *in.Price,
		Status:     in.Status,
		Amenities:  orEmpty(uniq(in.Amenities)),
		Active:     valueOr(in.Active, true),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := check(r); err != nil {
		return domain.Room{}, err
	}
	if err := s.verifyRefs(ctx, r.HotelID, r.RoomTypeID); err != nil {
		return domain.Room{}, err
	}
	if err := s.repo.InsertRoom(ctx, r); err != nil {
		return domain.Room{}, roomConflict(err, r)
	}
	log.Info().Str("room_id", r.ID).Str("hotel_id", r.HotelID).Str("room_number", r.RoomNumber).Msg("room created")
	return r, nil
}

// List returns active rooms, newest first.
func (s *RoomService) List(ctx context.Context) ([]domain.RoomView, error) {
	return s.list(ctx, domain.RoomQuery{Sort: domain.RoomsNewestFirst})
}

// ListByHotel returns a hotel's active rooms ordered by floor, then room number.
func (s *RoomService) ListByHotel(ctx context.Context, hotelID string) ([]domain.RoomView, error) {
	return s.list(ctx, domain.RoomQuery{HotelID: hotelID, Sort: domain.RoomsByFloor})
}

// Search returns matching active rooms, cheapest first.
func (s *RoomService) Search(ctx context.Context, q domain.RoomQuery) ([]domain.RoomView, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, domain.Invalid("status must be one of [available, occupied, maintenance, reserved]")
	}
	q.Sort = domain.RoomsByPrice
	return s.list(ctx, q)
}

func (s *RoomService) list(ctx context.Context, q domain.RoomQuery) ([]domain.RoomView, error) {
	q.ActiveOnly = true
	rs, err := s.repo.ListRooms(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.pop.Rooms(ctx, rs)
}

// GetByID only sees active rooms.
func (s *RoomService) GetByID(ctx context.Context, id string) (domain.RoomView, error) {
	r, err := s.repo.GetRoom(ctx, id, true)
	if err != nil {
		return domain.RoomView{}, err
	}
	return s.pop.Room(ctx, r)
}

func (s *RoomService) Update(ctx context.Context, id string, p domain.RoomPatch) (domain.RoomView, error) {
	cur, err := s.repo.GetRoom(ctx, id, false)
	if err != nil {
		return domain.RoomView{}, err
	}
	trimOptional(&p.RoomNumber)

	merged := cur
	p.Apply(&merged)
	if err := check(merged); err != nil {
		return domain.RoomView{}, err
	}
	if p.HotelID.Set || p.RoomTypeID.Set {
		if err := s.verifyRefs(ctx, merged.HotelID, merged.RoomTypeID); err != nil {
			return domain.RoomView{}, err
		}
	}

	updated, err := s.repo.UpdateRoom(ctx, id, p)
	if err != nil {
		return domain.RoomView{}, roomConflict(err, merged)
	}
	log.Info().Str("room_id", id).Msg("room updated")
	return s.pop.Room(ctx, updated)
}

// Delete deactivates the room.
func (s *RoomService) Delete(ctx context.Context, id string) (domain.Room, error) {
	r, err := s.repo.SetRoomActive(ctx, id, false)
	if err != nil {
		return domain.Room{}, err
	}
	log.Info().Str("room_id", id).Msg("room deactivated")
	return r, nil
}

// verifyRefs requires both referenced documents to exist, active or not.
func (s *RoomService) verifyRefs(ctx context.Context, hotelID, roomTypeID string) error {
	if _, err := s.hotels.GetHotel(ctx, hotelID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("hotel %s does not exist", hotelID)
		}
		return err
	}
	if _, err := s.roomTypes.GetRoomType(ctx, roomTypeID, false); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("room_type %s does not exist", roomTypeID)
		}
		return err
	}
	return nil
}

func roomConflict(err error, r domain.Room) error {
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("%w: room %s already exists in hotel %s", domain.ErrConflict, r.RoomNumber, r.HotelID)
	}
	return err
}
