package app

import (
	"context"
	"fmt"

	"hotel_service/internal/domain"
)

// Populator resolves reference ids into embedded documents for read responses.
// Each call issues at most one batched lookup per referenced collection.
// References that no longer resolve are dropped.
type Populator struct {
	hotels    domain.HotelRepository
	roomTypes domain.RoomTypeRepository
	amenities domain.AmenityRepository
}

func NewPopulator(h domain.HotelRepository, rt domain.RoomTypeRepository, a domain.AmenityRepository) *Populator {
	return &Populator{hotels: h, roomTypes: rt, amenities: a}
}

func (p *Populator) Hotel(ctx context.Context, h domain.Hotel) (domain.HotelView, error) {
	vs, err := p.Hotels(ctx, []domain.Hotel{h})
	if err != nil {
		return domain.HotelView{}, err
	}
	return vs[0], nil
}

func (p *Populator) Hotels(ctx context.Context, hs []domain.Hotel) ([]domain.HotelView, error) {
	lists := make([][]string, len(hs))
	for i, h := range hs {
		lists[i] = h.Amenities
	}
	am, err := p.amenityIndex(ctx, lists...)
	if err != nil {
		return nil, err
	}
	out := make([]domain.HotelView, len(hs))
	for i, h := range hs {
		out[i] = domain.HotelView{Hotel: h, Amenities: pick(am, h.Amenities)}
	}
	return out, nil
}

func (p *Populator) RoomType(ctx context.Context, rt domain.RoomType) (domain.RoomTypeView, error) {
	vs, err := p.RoomTypes(ctx, []domain.RoomType{rt})
	if err != nil {
		return domain.RoomTypeView{}, err
	}
	return vs[0], nil
}

func (p *Populator) RoomTypes(ctx context.Context, rts []domain.RoomType) ([]domain.RoomTypeView, error) {
	lists := make([][]string, len(rts))
	for i, rt := range rts {
		lists[i] = rt.Amenities
	}
	am, err := p.amenityIndex(ctx, lists...)
	if err != nil {
		return nil, err
	}
	out := make([]domain.RoomTypeView, len(rts))
	for i, rt := range rts {
		out[i] = domain.RoomTypeView{RoomType: rt, Amenities: pick(am, rt.Amenities)}
	}
	return out, nil
}

func (p *Populator) Room(ctx context.Context, r domain.Room) (domain.RoomView, error) {
	vs, err := p.Rooms(ctx, []domain.Room{r})
	if err != nil {
		return domain.RoomView{}, err
	}
	return vs[0], nil
}

func (p *Populator) Rooms(ctx context.Context, rs []domain.Room) ([]domain.RoomView, error) {
	hotelIDs := make([]string, 0, len(rs))
	typeIDs := make([]string, 0, len(rs))
	lists := make([][]string, len(rs))
	for i, r := range rs {
		hotelIDs = append(hotelIDs, r.HotelID)
		typeIDs = append(typeIDs, r.RoomTypeID)
		lists[i] = r.Amenities
	}

	hotels := map[string]domain.Hotel{}
	if ids := uniq(hotelIDs); len(ids) > 0 {
		found, err := p.hotels.FindHotels(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("populate hotels: %w", err)
		}
		for _, h := range found {
			hotels[h.ID] = h
		}
	}
	types := map[string]domain.RoomType{}
	if ids := uniq(typeIDs); len(ids) > 0 {
		found, err := p.roomTypes.FindRoomTypes(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("populate room types: %w", err)
		}
		for _, rt := range found {
			types[rt.ID] = rt
		}
	}
	am, err := p.amenityIndex(ctx, lists...)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RoomView, len(rs))
	for i, r := range rs {
		v := domain.RoomView{Room: r, Amenities: pick(am, r.Amenities)}
		if h, ok := hotels[r.HotelID]; ok {
			v.Hotel = &h
		}
		if rt, ok := types[r.RoomTypeID]; ok {
			v.RoomType = &rt
		}
		out[i] = v
	}
	return out, nil
}

func (p *Populator) amenityIndex(ctx context.Context, lists ...[]string) (map[string]domain.Amenity, error) {
	ids := uniq(lists...)
	idx := make(map[string]domain.Amenity, len(ids))
	if len(ids) == 0 {
		return idx, nil
	}
	found, err := p.amenities.FindAmenities(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("populate amenities: %w", err)
	}
	for _, a := range found {
		idx[a.ID] = a
	}
	return idx, nil
}

// pick keeps the order of ids; unknown ids are skipped.
func pick(idx map[string]domain.Amenity, ids []string) []domain.Amenity {
	out := make([]domain.Amenity, 0, len(ids))
	for _, id := range ids {
		if a, ok := idx[id]; ok {
			out = append(out, a)
		}
	}
	return out
}
