package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"hotel_service/internal/domain"
)

func hotelIDKey(id string) string     { return "hotel:id:" + id }
func hotelSlugKey(slug string) string { return "hotel:slug:" + slug }

// GetByID returns any hotel, active or not.
func (s *HotelService) GetByID(ctx context.Context, id string) (domain.HotelView, error) {
	h, err := s.cached(ctx, hotelIDKey(id), func() (domain.Hotel, error) {
		return s.repo.GetHotel(ctx, id)
	})
	if err != nil {
		return domain.HotelView{}, err
	}
	return s.pop.Hotel(ctx, h)
}

// GetBySlug only resolves active hotels.
func (s *HotelService) GetBySlug(ctx context.Context, slug string) (domain.HotelView, error) {
	h, err := s.cached(ctx, hotelSlugKey(slug), func() (domain.Hotel, error) {
		return s.repo.GetHotelBySlug(ctx, slug, true)
	})
	if err != nil {
		return domain.HotelView{}, err
	}
	return s.pop.Hotel(ctx, h)
}

// ListAll includes inactive hotels, newest first.
func (s *HotelService) ListAll(ctx context.Context) ([]domain.HotelView, error) {
	return s.list(ctx, domain.HotelQuery{})
}

func (s *HotelService) ListActive(ctx context.Context) ([]domain.HotelView, error) {
	return s.list(ctx, domain.HotelQuery{ActiveOnly: true})
}

// Search filters active hotels. The store narrows by bounding box; the radius is applied here.
func (s *HotelService) Search(ctx context.Context, q domain.HotelQuery) ([]domain.HotelView, error) {
	q.ActiveOnly = true
	if q.Geo != nil && q.Geo.RadiusKm < 0 {
		return nil, domain.Invalid("radius must be >= 0")
	}
	return s.list(ctx, q)
}

func (s *HotelService) list(ctx context.Context, q domain.HotelQuery) ([]domain.HotelView, error) {
	hs, err := s.repo.ListHotels(ctx, q)
	if err != nil {
		return nil, err
	}
	if q.Geo != nil {
		kept := hs[:0]
		for _, h := range hs {
			if h.Latitude != nil && h.Longitude != nil && q.Geo.Contains(*h.Latitude, *h.Longitude) {
				kept = append(kept, h)
			}
		}
		hs = kept
	}
	return s.pop.Hotels(ctx, hs)
}

// cached is cache-aside over load. Cache failures degrade to a store read.
// An invalidation that lands while load is in flight wins: the local epoch and the
// key's shared token are re-checked after the write, and a change removes the entry.
func (s *HotelService) cached(ctx context.Context, key string, load func() (domain.Hotel, error)) (domain.Hotel, error) {
	var h domain.Hotel
	if s.cache == nil {
		return load()
	}
	ok, err := s.cache.Get(ctx, key, &h)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	} else if ok {
		return h, nil
	}

	epoch := s.epoch.Load()
	token := s.token(ctx, key)
	h, err = load()
	if err != nil {
		return domain.Hotel{}, err
	}
	if err := s.cache.Set(ctx, key, h, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		return h, nil
	}
	if s.epoch.Load() != epoch || s.token(ctx, key) != token {
		log.Debug().Str("key", key).Msg("hotel invalidated during load; dropping cache entry")
		if err := s.cache.Del(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
		}
	}
	return h, nil
}

func tokenKey(key string) string { return key + ":gen" }

// token returns the key's invalidation token, "" when none is stored.
func (s *HotelService) token(ctx context.Context, key string) string {
	var tok string
	if _, err := s.cache.Get(ctx, tokenKey(key), &tok); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache token read failed")
		return ""
	}
	return tok
}
