package query

import (
	"math"
	"math/rand/v2"

	"eventize/models"
)

// metersPerDegree is the length of one degree of latitude on a spherical earth.
const metersPerDegree = 111_320.0

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic RandomSource.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// JitterCoordinateNear places a point up to maxOffsetMeters away from
// reference on each axis. It is demo scaffolding for events without
// geodata and uses a planar approximation, not a geodesic one.
func JitterCoordinateNear(reference *models.Coordinate, maxOffsetMeters float64, rnd RandomSource) (models.Coordinate, bool) {
	if reference == nil {
		return models.Coordinate{}, false
	}

	dNorth := (rnd.Float64()*2 - 1) * maxOffsetMeters
	dEast := (rnd.Float64()*2 - 1) * maxOffsetMeters

	lat := reference.Latitude + dNorth/metersPerDegree
	lon := reference.Longitude
	if cos := math.Cos(reference.Latitude * math.Pi / 180); cos > 1e-9 {
		lon += dEast / (metersPerDegree * cos)
	}
	return models.Coordinate{Latitude: lat, Longitude: lon}, true
}

// EnrichCoordinates gives every event lacking a coordinate a jittered one near
// reference. Events that already carry a coordinate are returned unchanged.
func EnrichCoordinates(events []models.Event, reference *models.Coordinate, maxOffsetMeters float64, rnd RandomSource) []models.Event {
	out := make([]models.Event, len(events))
	for i, e := range events {
		out[i] = e
		if _, ok := e.Content.Coordinate(); ok {
			continue
		}
		if c, ok := JitterCoordinateNear(reference, maxOffsetMeters, rnd); ok {
			out[i] = e.WithCoordinate(c)
		}
	}
	return out
}
