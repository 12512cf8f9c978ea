package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_service/internal/domain"
	"hotel_service/internal/slug"
)

const (
	maxSlugAttempts   = 3
	imagePurgeTimeout = 10 * time.Second
)

// HotelService owns hotel writes (this file) and cached hotel reads (queries.go).
type HotelService struct {
	repo     domain.HotelRepository
	images   domain.ImageStore
	pop      *Populator
	cache    domain.Cache
	cacheTTL int
	epoch    atomic.Uint64 // bumped on every local invalidation
	now      func() time.Time
}

// NewHotelService wires the hotel service. A nil cache or a zero ttl disables read caching.
func NewHotelService(r domain.HotelRepository, images domain.ImageStore, pop *Populator, cache domain.Cache, ttl time.Duration) *HotelService {
	s := &HotelService{repo: r, images: images, pop: pop, now: time.Now}
	if cache != nil && ttl > 0 {
		s.cache, s.cacheTTL = cache, int(ttl.Seconds())
	}
	return s
}

func (s *HotelService) Create(ctx context.Context, in domain.HotelInput) (domain.Hotel, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if err := check(in); err != nil {
		return domain.Hotel{}, err
	}
	base := slug.Make(in.DisplayName)
	if base == "" {
		return domain.Hotel{}, domain.Invalid("displayName must contain letters or digits")
	}

	now := s.now().UTC()
	h := domain.Hotel{
		ID:             uuid.NewString(),
		DisplayName:    in.DisplayName,
		Description:    valueOr(in.Description, domain.DefaultHotelDescription),
		Region:         strings.TrimSpace(in.Region),
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Price:          valueOr(in.Price, 0),
		StarRating:     valueOr(in.StarRating, domain.DefaultStarRating),
		UserRating:     valueOr(in.UserRating, 0),
		NumReviews:     valueOr(in.NumReviews, 0),
		UserRatingInfo: valueOr(in.UserRatingInfo, domain.DefaultUserRatingInfo),
		ImageURL:       valueOr(in.ImageURL, domain.DefaultHotelImage),
		ImageURLs:      orEmpty(in.ImageURLs),
		HotelFeatures:  orEmpty(in.HotelFeatures),
		Amenities:      orEmpty(uniq(in.Amenities)),
		Slug:           base,
		Active:         valueOr(in.Active, true),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := check(h); err != nil {
		return domain.Hotel{}, err
	}

	err := s.claimSlug(ctx, base, "", func(sl string) error {
		h.Slug = sl
		return s.repo.InsertHotel(ctx, h)
	})
	if err != nil {
		return domain.Hotel{}, err
	}
	log.Info().Str("hotel_id", h.ID).Str("slug", h.Slug).Msg("hotel created")
	return h, nil
}

// Update merges the patch into the stored hotel. The slug is regenerated only when displayName is supplied.
func (s *HotelService) Update(ctx context.Context, id string, p domain.HotelPatch) (domain.HotelView, error) {
	cur, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.HotelView{}, err
	}
	p.Slug = domain.Optional[string]{}
	trimOptional(&p.DisplayName)
	trimOptional(&p.Region)

	merged := cur
	p.Apply(&merged)
	if err := check(merged); err != nil {
		return domain.HotelView{}, err
	}

	var updated domain.Hotel
	if p.DisplayName.Set {
		base := slug.Make(merged.DisplayName)
		if base == "" {
			return domain.HotelView{}, domain.Invalid("displayName must contain letters or digits")
		}
		err = s.claimSlug(ctx, base, id, func(sl string) error {
			p.Slug = domain.Some(sl)
			var uerr error
			updated, uerr = s.repo.UpdateHotel(ctx, id, p)
			return uerr
		})
	} else {
		updated, err = s.repo.UpdateHotel(ctx, id, p)
	}
	if err != nil {
		return domain.HotelView{}, err
	}

	s.invalidate(ctx, id, cur.Slug, updated.Slug)
	log.Info().Str("hotel_id", id).Str("slug", updated.Slug).Msg("hotel updated")
	return s.pop.Hotel(ctx, updated)
}

// SoftDelete deactivates the hotel; it stays addressable by id.
func (s *HotelService) SoftDelete(ctx context.Context, id string) (domain.Hotel, error) {
	h, err := s.repo.SetHotelActive(ctx, id, false)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.invalidate(ctx, id, h.Slug)
	log.Info().Str("hotel_id", id).Msg("hotel deactivated")
	return h, nil
}

// Delete removes the hotel permanently after a best-effort purge of its images.
// The purge outcome never changes the result of the delete.
func (s *HotelService) Delete(ctx context.Context, id string) error {
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return err
	}
	s.purgeImages(ctx, h)

	if _, err := s.repo.DeleteHotel(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id, h.Slug)
	log.Info().Str("hotel_id", id).Str("slug", h.Slug).Msg("hotel deleted")
	return nil
}

func (s *HotelService) purgeImages(ctx context.Context, h domain.Hotel) {
	urls := hotelImages(h)
	if len(urls) == 0 || s.images == nil {
		return
	}
	// detached so a client disconnect does not cut the purge short
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), imagePurgeTimeout)
	defer cancel()

	var (
		res domain.PurgeResult
		err error
	)
	if len(urls) == 1 {
		res, err = s.images.DeleteImage(pctx, urls[0])
	} else {
		res, err = s.images.DeleteImages(pctx, urls)
	}
	ev := log.Info()
	if err != nil || res.FailedCount > 0 {
		ev = log.Warn().Err(err)
	}
	ev.Str("hotel_id", h.ID).
		Int("requested", len(urls)).
		Int("deleted", res.SuccessCount).
		Int("failed", res.FailedCount).
		Int("skipped", res.Skipped).
		Msg("hotel image purge")
}

// hotelImages lists the hotel's own images, excluding blanks and the shared placeholder.
func hotelImages(h domain.Hotel) []string {
	var out []string
	for _, u := range uniq(append([]string{h.ImageURL}, h.ImageURLs...)) {
		if u = strings.TrimSpace(u); u != "" && u != domain.DefaultHotelImage {
			out = append(out, u)
		}
	}
	return out
}

// claimSlug probes for a free slug and runs write with it. The store's unique index has the
// final say: a lost race re-probes, up to maxSlugAttempts writes.
func (s *HotelService) claimSlug(ctx context.Context, base, exceptID string, write func(slug string) error) error {
	exists := func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.SlugTaken(ctx, candidate, exceptID)
	}
	for attempt := 1; ; attempt++ {
		sl, err := slug.Unique(ctx, base, exists)
		if err != nil {
			return fmt.Errorf("probe slug %q: %w", base, err)
		}
		err = write(sl)
		if errors.Is(err, domain.ErrSlugTaken) && attempt < maxSlugAttempts {
			log.Warn().Str("slug", sl).Int("attempt", attempt).Msg("slug taken concurrently, re-probing")
			continue
		}
		return err
	}
}

// invalidate evicts the hotel's id key and every slug key it may be cached under.
func (s *HotelService) invalidate(ctx context.Context, id string, slugs ...string) {
	if s.cache == nil {
		return
	}
	keys := []string{hotelIDKey(id)}
	for _, sl := range uniq(slugs) {
		keys = append(keys, hotelSlugKey(sl))
	}
	s.epoch.Add(1)
	for _, k := range keys {
		// token first: a reader that misses the new token is still covered by the Del below
		if err := s.cache.Set(ctx, tokenKey(k), uuid.NewString(), s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("cache token write failed")
		}
		if err := s.cache.Del(ctx, k); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("cache invalidation failed")
		}
	}
}
