package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Exterior rebuilds a polygon from its outer ring only, discarding holes. A
// positive tolerance additionally runs Douglas-Peucker over the ring; if the
// simplified ring would collapse below a triangle the unsimplified ring is kept.
func Exterior(p orb.Polygon, tolerance float64) orb.Polygon {
	if len(p) == 0 || len(p[0]) == 0 {
		return nil
	}

	ring := p[0].Clone()
	if tolerance > 0 {
		if r, ok := simplify.DouglasPeucker(tolerance).Simplify(ring).(orb.Ring); ok && len(r) >= 4 {
			ring = r
		}
	}
	return orb.Polygon{ring}
}
