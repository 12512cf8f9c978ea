package domain

import (
	"math"

	"github.com/umahmood/haversine"
)

// kmPerDegree slightly underestimates a degree of latitude so the box always
// contains the haversine circle.
const kmPerDegree = 111.0

type GeoFilter struct {
	Lat, Lng float64
	RadiusKm float64
}

// Box returns the degree bounds used to pre-filter in the store.
func (g GeoFilter) Box() (minLat, maxLat, minLng, maxLng float64) {
	dLat := g.RadiusKm / kmPerDegree
	dLng := 180.0
	if c := math.Cos(g.Lat * math.Pi / 180); c > 1e-6 {
		dLng = math.Min(180, g.RadiusKm/(kmPerDegree*c))
	}
	return g.Lat - dLat, g.Lat + dLat, g.Lng - dLng, g.Lng + dLng
}

func (g GeoFilter) Contains(lat, lng float64) bool {
	_, km := haversine.Distance(
		haversine.Coord{Lat: g.Lat, Lon: g.Lng},
		haversine.Coord{Lat: lat, Lon: lng},
	)
	return km <= g.RadiusKm
}
