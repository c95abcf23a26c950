// Package geo holds the geometry primitives the gridding and matching code is
// built on: bounding areas, distance functions, exterior-ring reconstruction
// and line splitting. Everything here is a pure function over orb types.
//
// Go Learning Note — "github.com/paulmach/orb":
// orb models geometries as plain slices: a Point is [2]float64 (lon, lat), a
// Ring is []Point, a Polygon is []Ring with the exterior first. Because the
// types are just slices you can build them with literals and range over them
// directly; the sub-packages (geo, planar, simplify, geojson) provide the
// algorithms on top.
package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	"transgrid/internal/domain/entities"
)

// BoundingArea is a normalized lon/lat rectangle with min < max on both axes.
type BoundingArea struct {
	orb.Bound
}

// NewBoundingArea validates and wraps the given extent.
func NewBoundingArea(minLon, minLat, maxLon, maxLat float64) (BoundingArea, error) {
	a := BoundingArea{Bound: orb.Bound{
		Min: orb.Point{minLon, minLat},
		Max: orb.Point{maxLon, maxLat},
	}}
	if err := a.Validate(); err != nil {
		return BoundingArea{}, err
	}
	return a, nil
}

// Validate checks min < max on both axes and latitudes within [-90, 90].
// Areas built as struct literals skip NewBoundingArea, so everything that
// consumes one calls this first.
func (a BoundingArea) Validate() error {
	if !(a.Min.Lon() < a.Max.Lon()) {
		return fmt.Errorf("%w: longitude min %v >= max %v", entities.ErrInvalidBounds, a.Min.Lon(), a.Max.Lon())
	}
	if !(a.Min.Lat() < a.Max.Lat()) {
		return fmt.Errorf("%w: latitude min %v >= max %v", entities.ErrInvalidBounds, a.Min.Lat(), a.Max.Lat())
	}
	if a.Min.Lat() < -90 || a.Max.Lat() > 90 {
		return fmt.Errorf("%w: latitude outside [-90, 90]", entities.ErrInvalidBounds)
	}
	return nil
}

// BoundFromPoints derives the extent of a point collection.
func BoundFromPoints(points []orb.Point) (BoundingArea, error) {
	if len(points) == 0 {
		return BoundingArea{}, fmt.Errorf("%w: no points to derive bounds from", entities.ErrEmptyInput)
	}
	b := orb.MultiPoint(points).Bound()
	return NewBoundingArea(b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat())
}

// BoundFromPolygon derives the extent of a polygon's exterior.
func BoundFromPolygon(p orb.Polygon) (BoundingArea, error) {
	if len(p) == 0 || len(p[0]) == 0 {
		return BoundingArea{}, fmt.Errorf("%w: polygon has no exterior ring", entities.ErrEmptyInput)
	}
	b := p.Bound()
	return NewBoundingArea(b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat())
}

// MidLat is the latitude halfway between the area's south and north edges.
func (a BoundingArea) MidLat() float64 {
	return (a.Min.Lat() + a.Max.Lat()) / 2
}

// Overlaps reports whether b shares interior area with a. Rectangles that only
// touch along an edge do not overlap.
func (a BoundingArea) Overlaps(b orb.Bound) bool {
	return b.Min.X() < a.Max.X() && b.Max.X() > a.Min.X() &&
		b.Min.Y() < a.Max.Y() && b.Max.Y() > a.Min.Y()
}
