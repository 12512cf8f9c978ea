package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_service/internal/domain"
)

type RoomTypeService struct {
	repo domain.RoomTypeRepository
	pop  *Populator
	now  func() time.Time
}

func NewRoomTypeService(r domain.RoomTypeRepository, pop *Populator) *RoomTypeService {
	return &RoomTypeService{repo: r, pop: pop, now: time.Now}
}

func (s *RoomTypeService) Create(ctx context.Context, in domain.RoomTypeInput) (domain.RoomType, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return domain.RoomType{}, err
	}
	now := s.now().UTC()
	rt := domain.RoomType{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		BasePrice:   *in.BasePrice,
		MaxCapacity: *in.MaxCapacity,
		Amenities:   orEmpty(uniq(in.Amenities)),
		Active:      valueOr(in.Active, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := check(rt); err != nil {
		return domain.RoomType{}, err
	}
	if err := s.repo.InsertRoomType(ctx, rt); err != nil {
		return domain.RoomType{}, err
	}
	log.Info().Str("room_type_id", rt.ID).Str("name", rt.Name).Msg("room type created")
	return rt, nil
}

func (s *RoomTypeService) List(ctx context.Context) ([]domain.RoomTypeView, error) {
	rts, err := s.repo.ListRoomTypes(ctx, true)
	if err != nil {
		return nil, err
	}
	return s.pop.RoomTypes(ctx, rts)
}

func (s *RoomTypeService) GetByID(ctx context.Context, id string) (domain.RoomTypeView, error) {
	rt, err := s.repo.GetRoomType(ctx, id, true)
	if err != nil {
		return domain.RoomTypeView{}, err
	}
	return s.pop.RoomType(ctx, rt)
}

func (s *RoomTypeService) Update(ctx context.Context, id string, p domain.RoomTypePatch) (domain.RoomTypeView, error) {
	cur, err := s.repo.GetRoomType(ctx, id, false)
	if err != nil {
		return domain.RoomTypeView{}, err
	}
	trimOptional(&p.Name)
	merged := cur
	p.Apply(&merged)
	if err := check(merged); err != nil {
		return domain.RoomTypeView{}, err
	}
	updated, err := s.repo.UpdateRoomType(ctx, id, p)
	if err != nil {
		return domain.RoomTypeView{}, err
	}
	log.Info().Str("room_type_id", id).Msg("room type updated")
	return s.pop.RoomType(ctx, updated)
}

func (s *RoomTypeService) Delete(ctx context.Context, id string) (domain.RoomType, error) {
	rt, err := s.repo.SetRoomTypeActive(ctx, id, false)
	if err != nil {
		return domain.RoomType{}, err
	}
	log.Info().Str("room_type_id", id).Msg("room type deactivated")
	return rt, nil
}
