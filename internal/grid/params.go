package grid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"transgrid/internal/domain/entities"
)

// Params describes one grid. One unit of the normalized plane spans DeltaLon
// degrees east and DeltaLat degrees north of the origin; for Tri and Hexa that
// unit is the cell edge length. Theta rotates the tessellation counter-clockwise
// (degrees) around the origin.
//
// Params is read-only once constructed. Every component that buckets points
// must use the same Params value, otherwise the resulting ids are silently
// incompatible.
type Params struct {
	Family    Family  `json:"family"`
	OriginLon float64 `json:"origin_lon"`
	OriginLat float64 `json:"origin_lat"`
	DeltaLon  float64 `json:"delta_lon"`
	DeltaLat  float64 `json:"delta_lat"`
	// Size is the ground length in meters of one unit, when known.
	Size  float64 `json:"size,omitempty"`
	Theta float64 `json:"theta,omitempty"`
}

// NewRectParams builds an explicit rectangular grid from an origin (the
// south-west corner of cell (0, 0)) and a cell size in degrees.
func NewRectParams(originLon, originLat, deltaLon, deltaLat float64) (Params, error) {
	p := Params{
		Family:    Rect,
		OriginLon: originLon,
		OriginLat: originLat,
		DeltaLon:  deltaLon,
		DeltaLat:  deltaLat,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks the invariants every codec relies on.
func (p Params) Validate() error {
	if !p.Family.Valid() {
		return fmt.Errorf("%w: unknown grid family %d", entities.ErrSchema, int(p.Family))
	}
	if !(p.DeltaLon > 0) || !(p.DeltaLat > 0) || math.IsInf(p.DeltaLon, 0) || math.IsInf(p.DeltaLat, 0) {
		return fmt.Errorf("%w: cell span (%v, %v) must be positive", entities.ErrInvalidSize, p.DeltaLon, p.DeltaLat)
	}
	if !finite(p.OriginLon) || !finite(p.OriginLat) || !finite(p.Theta) {
		return fmt.Errorf("%w: origin and rotation must be finite", entities.ErrSchema)
	}
	return nil
}

// toPlane moves a lon/lat point into the normalized plane.
func (p Params) toPlane(pt orb.Point) (x, y float64) {
	x = (pt.Lon() - p.OriginLon) / p.DeltaLon
	y = (pt.Lat() - p.OriginLat) / p.DeltaLat
	if p.Theta == 0 {
		return x, y
	}
	sin, cos := math.Sincos(p.Theta * math.Pi / 180)
	return x*cos + y*sin, -x*sin + y*cos
}

// fromPlane is the inverse of toPlane.
func (p Params) fromPlane(x, y float64) orb.Point {
	if p.Theta != 0 {
		sin, cos := math.Sincos(p.Theta * math.Pi / 180)
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	return orb.Point{p.OriginLon + x*p.DeltaLon, p.OriginLat + y*p.DeltaLat}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func floor(f float64) int {
	return int(math.Floor(f))
}
