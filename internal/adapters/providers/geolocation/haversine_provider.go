package geolocation

import (
	"math"

	"github.com/gururaser/real-estate-game/internal/domain/entities"
	"github.com/gururaser/real-estate-game/internal/domain/providers"
)

const (
	earthRadiusKm = 6371.0
	milesPerKm    = 0.621371
)

// HaversineProvider computes great-circle distances locally
type HaversineProvider struct{}

// NewHaversineProvider creates a new haversine distance provider
func NewHaversineProvider() providers.GeolocationProvider {
	return &HaversineProvider{}
}

// Distance calculates the distance between two points using the Haversine
// formula. It performs no coordinate validation; the absent-coordinate
// convention is enforced by callers.
func (p *HaversineProvider) Distance(from, to entities.Coordinates) entities.Distance {
	lat1Rad := toRadians(from.Latitude)
	lat2Rad := toRadians(to.Latitude)
	deltaLat := toRadians(to.Latitude - from.Latitude)
	deltaLon := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	km := earthRadiusKm * c
	return entities.Distance{Km: km, Miles: km * milesPerKm}
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
