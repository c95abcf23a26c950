package polygon

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"transgrid/internal/domain/entities"
	"transgrid/internal/geo"
)

// Exterior replaces every polygon of fc by its outer boundary, dropping
// holes. For multipolygons, parts whose area is not above minArea are removed
// when minArea > 0; a feature left with no parts is removed. Single polygons
// are never filtered by area. tolerance > 0 additionally simplifies each
// boundary (see geo.Exterior). Properties are copied; fc is not modified.
func Exterior(fc *geojson.FeatureCollection, minArea, tolerance float64) (*geojson.FeatureCollection, error) {
	if math.IsNaN(minArea) || math.IsNaN(tolerance) || tolerance < 0 {
		return nil, fmt.Errorf("%w: min area %v, tolerance %v", entities.ErrInvalidSize, minArea, tolerance)
	}

	out := geojson.NewFeatureCollection()
	if fc == nil {
		return out, nil
	}
	for i, f := range fc.Features {
		var g orb.Geometry
		switch src := f.Geometry.(type) {
		case orb.Polygon:
			if p := geo.Exterior(src, tolerance); p != nil {
				g = p
			}
		case orb.MultiPolygon:
			parts := make(orb.MultiPolygon, 0, len(src))
			for _, part := range src {
				p := geo.Exterior(part, tolerance)
				if p == nil {
					continue
				}
				if minArea > 0 && math.Abs(planar.Area(p)) <= minArea {
					continue
				}
				parts = append(parts, p)
			}
			if len(parts) > 0 {
				g = parts
			}
		default:
			return nil, fmt.Errorf("feature %d: %w: geometry is %s, want Polygon or MultiPolygon", i, entities.ErrSchema, geometryType(f.Geometry))
		}
		if g == nil {
			continue
		}

		nf := geojson.NewFeature(g)
		nf.ID = f.ID
		for k, v := range f.Properties {
			nf.Properties[k] = v
		}
		out.Append(nf)
	}
	return out, nil
}

// Area is the planar area of every feature, in squared coordinate units.
// Non-areal geometries count as zero.
func Area(fc *geojson.FeatureCollection) []float64 {
	if fc == nil {
		return nil
	}
	areas := make([]float64, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry != nil {
			areas[i] = math.Abs(planar.Area(f.Geometry))
		}
	}
	return areas
}
