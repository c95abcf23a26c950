package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// EarthRadius is the sphere radius in meters used for every meter <-> degree
// conversion. It matches orb/geo so that derived grids and haversine distances
// agree with each other.
const EarthRadius = orb.EarthRadius

const degToRad = math.Pi / 180

// Euclidean is the straight-line distance in coordinate units.
func Euclidean(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// Haversine is the great-circle ground distance in meters.
func Haversine(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b)
}

// SmallAngle approximates the ground distance in meters by treating the
// neighbourhood of the two points as flat (equirectangular projection). Good
// to well under a percent for the few-kilometre spans grid cells cover.
func SmallAngle(a, b orb.Point) float64 {
	midLat := (a.Lat() + b.Lat()) / 2 * degToRad
	dx := (b.Lon() - a.Lon()) * degToRad * math.Cos(midLat) * EarthRadius
	dy := (b.Lat() - a.Lat()) * degToRad * EarthRadius
	return math.Hypot(dx, dy)
}

// MetersToDegrees converts a ground length into the longitude and latitude
// spans it covers at the given latitude.
func MetersToDegrees(meters, atLat float64) (deltaLon, deltaLat float64) {
	deltaLat = meters / (EarthRadius * degToRad)
	deltaLon = deltaLat / math.Cos(atLat*degToRad)
	return deltaLon, deltaLat
}
