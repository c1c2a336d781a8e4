package providers

import (
	"github.com/gururaser/real-estate-game/internal/domain/entities"
)

// GeolocationProvider computes distances between listing coordinates.
// Callers must honor the absent-coordinate convention (a latitude or
// longitude of exactly zero means the listing has no usable location)
// before invoking; implementations are total over all real inputs.
type GeolocationProvider interface {
	// Distance returns the great-circle distance between two points
	Distance(from, to entities.Coordinates) entities.Distance
}
