// Package polygon post-processes polygon feature collections: dissolving by
// category and reducing polygons to their outer boundary.
//
// Go Learning Note — Bridging Geometry Libraries:
// orb has the geometry types and GeoJSON I/O used everywhere else, but no
// overlay engine. simplefeatures has one. Both speak WKB, so a round trip
// through bytes moves a geometry from one library to the other without
// hand-written conversion code.
package polygon

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/geojson"
	"github.com/peterstace/simplefeatures/geom"
	"transgrid/internal/domain/entities"
)

// Merge dissolves the polygons of fc by the value of the column property:
// one output feature per distinct value, in order of first appearance, whose
// geometry is the union of every polygon in that category. Output features
// carry only the category column.
func Merge(fc *geojson.FeatureCollection, column string) (*geojson.FeatureCollection, error) {
	if fc == nil || len(fc.Features) == 0 {
		return geojson.NewFeatureCollection(), nil
	}

	var (
		order  []any
		groups = make(map[any][]geom.Geometry)
	)
	for i, f := range fc.Features {
		v, err := category(f, column)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		g, err := toSimple(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		if _, seen := groups[v]; !seen {
			order = append(order, v)
		}
		groups[v] = append(groups[v], g)
	}

	out := geojson.NewFeatureCollection()
	for _, v := range order {
		merged, err := union(groups[v])
		if err != nil {
			return nil, fmt.Errorf("merge %s=%v: %w", column, v, err)
		}
		f := geojson.NewFeature(merged)
		f.Properties[column] = v
		out.Append(f)
	}
	return out, nil
}

// category reads the grouping value. Only scalar JSON values can be used as
// map keys here. Numbers are normalized to float64 so that 1 and 1.0 group
// together, matching what encoding/json would have decoded.
func category(f *geojson.Feature, column string) (any, error) {
	v, ok := f.Properties[column]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: missing column %q", entities.ErrSchema, column)
	}
	switch n := v.(type) {
	case string, bool, float64:
		return v, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		if x, err := n.Float64(); err == nil {
			return x, nil
		}
		return n.String(), nil
	default:
		return nil, fmt.Errorf("%w: column %q holds %T, want a scalar", entities.ErrSchema, column, v)
	}
}

func toSimple(g orb.Geometry) (geom.Geometry, error) {
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
	default:
		return geom.Geometry{}, fmt.Errorf("%w: geometry is %s, want Polygon or MultiPolygon", entities.ErrSchema, geometryType(g))
	}
	raw, err := wkb.Marshal(g)
	if err != nil {
		return geom.Geometry{}, fmt.Errorf("%w: %v", entities.ErrSchema, err)
	}
	sg, err := geom.UnmarshalWKB(raw)
	if err != nil {
		return geom.Geometry{}, fmt.Errorf("%w: %v", entities.ErrSchema, err)
	}
	return sg, nil
}

func fromSimple(g geom.Geometry) (orb.Geometry, error) {
	og, err := wkb.Unmarshal(g.AsBinary())
	if err != nil {
		return nil, err
	}
	switch og.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return og, nil
	default:
		return nil, fmt.Errorf("union produced %s", og.GeoJSONType())
	}
}

func union(gs []geom.Geometry) (orb.Geometry, error) {
	acc := gs[0]
	for _, g := range gs[1:] {
		var err error
		if acc, err = geom.Union(acc, g); err != nil {
			return nil, err
		}
	}
	return fromSimple(acc)
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}
