package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_service/internal/domain"
)

type AmenityService struct {
	repo domain.AmenityRepository
	now  func() time.Time
}

func NewAmenityService(r domain.AmenityRepository) *AmenityService {
	return &AmenityService{repo: r, now: time.Now}
}

func (s *AmenityService) Create(ctx context.Context, in domain.AmenityInput) (domain.Amenity, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return domain.Amenity{}, err
	}
	now := s.now().UTC()
	a := domain.Amenity{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Icon:        valueOr(in.Icon, domain.DefaultAmenityIcon),
		Active:      valueOr(in.Active, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := check(a); err != nil {
		return domain.Amenity{}, err
	}
	if err := s.repo.InsertAmenity(ctx, a); err != nil {
		return domain.Amenity{}, err
	}
	log.Info().Str("amenity_id", a.ID).Str("name", a.Name).Msg("amenity created")
	return a, nil
}

// List returns active amenities by name.
func (s *AmenityService) List(ctx context.Context) ([]domain.Amenity, error) {
	return s.repo.ListAmenities(ctx, true)
}

func (s *AmenityService) GetByID(ctx context.Context, id string) (domain.Amenity, error) {
	return s.repo.GetAmenity(ctx, id, true)
}

func (s *AmenityService) Update(ctx context.Context, id string, p domain.AmenityPatch) (domain.Amenity, error) {
	cur, err := s.repo.GetAmenity(ctx, id, false)
	if err != nil {
		return domain.Amenity{}, err
	}
	trimOptional(&p.Name)
	merged := cur
	p.Apply(&merged)
	if err := check(merged); err != nil {
		return domain.Amenity{}, err
	}
	updated, err := s.repo.UpdateAmenity(ctx, id, p)
	if err != nil {
		return domain.Amenity{}, err
	}
	log.Info().Str("amenity_id", id).Msg("amenity updated")
	return updated, nil
}

func (s *AmenityService) Delete(ctx context.Context, id string) (domain.Amenity, error) {
	a, err := s.repo.SetAmenityActive(ctx, id, false)
	if err != nil {
		return domain.Amenity{}, err
	}
	log.Info().Str("amenity_id", id).Msg("amenity deactivated")
	return a, nil
}
