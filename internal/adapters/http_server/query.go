package httpserver

import (
	"net/url"
	"strconv"
	"strings"

	"hotel_service/internal/domain"
)

// floatParam returns nil for an absent or blank parameter.
func floatParam(v url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.Invalid("%s must be a number", key)
	}
	return &f, nil
}

// listParam accepts both comma-separated and repeated values.
func listParam(v url.Values, key string) []string {
	var out []string
	for _, raw := range v[key] {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func floatParams(v url.Values, dst map[string]**float64) error {
	for key, p := range dst {
		f, err := floatParam(v, key)
		if err != nil {
			return err
		}
		*p = f
	}
	return nil
}

func hotelQuery(v url.Values) (domain.HotelQuery, error) {
	q := domain.HotelQuery{
		Text:      strings.TrimSpace(v.Get("query")),
		Region:    strings.TrimSpace(v.Get("region")),
		Features:  listParam(v, "hotelFeatures"),
		Amenities: listParam(v, "amenities"),
	}
	var lat, lng, radius *float64
	err := floatParams(v, map[string]**float64{
		"minPrice":   &q.MinPrice,
		"maxPrice":   &q.MaxPrice,
		"starRating": &q.StarRating,
		"minStar":    &q.MinStar,
		"maxStar":    &q.MaxStar,
		"lat":        &lat,
		"lng":        &lng,
		"radius":     &radius,
	})
	if err != nil {
		return q, err
	}
	// Geo filtering needs all three; a partial set is ignored.
	if lat != nil && lng != nil && radius != nil {
		if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
			return q, domain.Invalid("lat/lng out of range")
		}
		q.Geo = &domain.GeoFilter{Lat: *lat, Lng: *lng, RadiusKm: *radius}
	}
	return q, nil
}

func roomQuery(v url.Values) (domain.RoomQuery, error) {
	q := domain.RoomQuery{
		HotelID:    strings.TrimSpace(v.Get("hotelId")),
		RoomTypeID: strings.TrimSpace(v.Get("roomTypeId")),
		Status:     domain.RoomStatus(strings.TrimSpace(v.Get("status"))),
		Amenities:  listParam(v, "amenities"),
	}
	err := floatParams(v, map[string]**float64{
		"minPrice": &q.MinPrice,
		"maxPrice": &q.MaxPrice,
	})
	return q, err
}
