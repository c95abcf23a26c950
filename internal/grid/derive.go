package grid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"transgrid/internal/domain/entities"
	"transgrid/internal/geo"
)

// Unit-edge cell areas in the normalized plane, used for closed-form size
// guesses.
var cellArea = map[Family]float64{
	Rect: 1,
	Tri:  math.Sqrt(3) / 4,
	Hexa: 3 * math.Sqrt(3) / 2,
}

// DeriveParams anchors a grid at the area's south-west corner with cells whose
// edge is sizeMeters long on the ground. Degree spans are taken at the area's
// mid latitude, so cells stay close to square (Rect) or regular (Tri, Hexa)
// across a city-sized area.
func DeriveParams(area geo.BoundingArea, family Family, sizeMeters float64) (Params, error) {
	if err := area.Validate(); err != nil {
		return Params{}, err
	}
	if !(sizeMeters > 0) || math.IsInf(sizeMeters, 0) {
		return Params{}, fmt.Errorf("%w: cell size %v must be positive", entities.ErrInvalidSize, sizeMeters)
	}
	if !family.Valid() {
		return Params{}, fmt.Errorf("%w: unknown grid family %d", entities.ErrSchema, int(family))
	}

	deltaLon, deltaLat := geo.MetersToDegrees(sizeMeters, area.MidLat())
	p := Params{
		Family:    family,
		OriginLon: area.Min.Lon(),
		OriginLat: area.Min.Lat(),
		DeltaLon:  deltaLon,
		DeltaLat:  deltaLat,
		Size:      sizeMeters,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Cover lists every cell whose polygon shares area with the bounding area, so
// the union of the returned polygons contains the whole area.
func Cover(p Params, area geo.BoundingArea) ([]GridID, error) {
	var ids []GridID
	err := visitCover(p, area, func(id GridID) {
		ids = append(ids, id)
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CellCount is len(Cover(p, area)) without materializing the ids.
func CellCount(p Params, area geo.BoundingArea) (int, error) {
	n := 0
	err := visitCover(p, area, func(GridID) { n++ })
	return n, err
}

func visitCover(p Params, area geo.BoundingArea, visit func(GridID)) error {
	if err := area.Validate(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	c, err := p.codecFor()
	if err != nil {
		return err
	}

	minX, minY, maxX, maxY := planeBox(p, area)
	c.candidates(minX, minY, maxX, maxY, func(id GridID) {
		id.Family = p.Family
		if area.Overlaps(p.polygon(c, id).Bound()) {
			visit(id)
		}
	})
	return nil
}

// EstimateCells approximates CellCount from the plane-space extent of the
// area without visiting a single cell. Use it to refuse oversized covers
// before paying for them.
func EstimateCells(p Params, area geo.BoundingArea) (float64, error) {
	if err := area.Validate(); err != nil {
		return 0, err
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}
	minX, minY, maxX, maxY := planeBox(p, area)
	return (maxX - minX) * (maxY - minY) / cellArea[p.Family], nil
}

// planeBox is the plane-space bounding box of the (possibly rotated) area.
func planeBox(p Params, area geo.BoundingArea) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	corners := []orb.Point{
		area.Min,
		{area.Max.Lon(), area.Min.Lat()},
		area.Max,
		{area.Min.Lon(), area.Max.Lat()},
	}
	for _, corner := range corners {
		x, y := p.toPlane(corner)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return minX, minY, maxX, maxY
}

// OptimizeOptions tunes OptimizeParams.
type OptimizeOptions struct {
	// Tolerance is the accepted relative deviation |count-target|/target.
	Tolerance float64
	// MaxIterations bounds the bisection steps.
	MaxIterations int
}

// DefaultOptimizeOptions is 1% tolerance, 50 bisection steps.
var DefaultOptimizeOptions = OptimizeOptions{Tolerance: 0.01, MaxIterations: 50}

// OptimizeParams searches for the cell edge length whose covering cell count
// is closest to targetCells. It starts from the closed-form guess
// sqrt(area / (target * unitCellArea)), brackets it by a factor of four on each
// side and bisects, stopping as soon as the count is within tolerance. The
// params with the best count seen are returned even when tolerance is never
// reached.
func OptimizeParams(area geo.BoundingArea, family Family, targetCells int, opts OptimizeOptions) (Params, error) {
	if err := area.Validate(); err != nil {
		return Params{}, err
	}
	if targetCells <= 0 {
		return Params{}, fmt.Errorf("%w: target cell count %d must be positive", entities.ErrInvalidSize, targetCells)
	}
	unit, ok := cellArea[family]
	if !ok {
		return Params{}, fmt.Errorf("%w: unknown grid family %d", entities.ErrSchema, int(family))
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultOptimizeOptions.MaxIterations
	}
	if opts.Tolerance < 0 {
		opts.Tolerance = 0
	}

	width := geo.SmallAngle(orb.Point{area.Min.Lon(), area.MidLat()}, orb.Point{area.Max.Lon(), area.MidLat()})
	height := geo.SmallAngle(orb.Point{area.Min.Lon(), area.Min.Lat()}, orb.Point{area.Min.Lon(), area.Max.Lat()})
	guess := math.Sqrt(width * height / (float64(targetCells) * unit))

	var (
		best     Params
		bestDiff = math.Inf(1)
		lo, hi   = guess / 4, guess * 4
	)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		size := (lo + hi) / 2
		p, err := DeriveParams(area, family, size)
		if err != nil {
			return Params{}, err
		}
		n, err := CellCount(p, area)
		if err != nil {
			return Params{}, err
		}

		diff := math.Abs(float64(n - targetCells))
		if diff < bestDiff {
			best, bestDiff = p, diff
		}
		if diff/float64(targetCells) <= opts.Tolerance {
			break
		}

		// Larger cells mean fewer of them.
		if n > targetCells {
			lo = size
		} else {
			hi = size
		}
	}
	return best, nil
}
