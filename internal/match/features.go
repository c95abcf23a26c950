package match

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"transgrid/internal/domain/entities"
)

// JoinNearestFeatures matches every point feature of a against b, which must
// hold either only points or only linestrings. The result keeps a's
// geometries and merges the properties of the matched b feature the same way
// JoinNearest merges columns.
func JoinNearestFeatures(a, b *geojson.FeatureCollection, opts Options) (*geojson.FeatureCollection, error) {
	if a == nil || len(a.Features) == 0 {
		return nil, fmt.Errorf("%w: no query features", entities.ErrEmptyInput)
	}
	if b == nil || len(b.Features) == 0 {
		return nil, fmt.Errorf("%w: no reference features", entities.ErrEmptyInput)
	}

	queries := make([]orb.Point, len(a.Features))
	for i, f := range a.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("%w: query feature %d is %s, want Point", entities.ErrSchema, i, geometryType(f.Geometry))
		}
		queries[i] = p
	}

	results, err := matchFeatures(queries, b.Features, opts)
	if err != nil {
		return nil, err
	}

	left := make([]entities.Record, len(a.Features))
	for i, f := range a.Features {
		left[i] = entities.Record(f.Properties)
	}
	right := make([]entities.Record, len(b.Features))
	for i, f := range b.Features {
		right[i] = entities.Record(f.Properties)
	}
	shared := sharedColumns(left, right)

	out := geojson.NewFeatureCollection()
	for i, r := range results {
		f := geojson.NewFeature(queries[i])
		f.Properties = geojson.Properties(mergeRows(left[i], right[r.Ref], shared, r))
		out.Append(f)
	}
	return out, nil
}

func matchFeatures(queries []orb.Point, refs []*geojson.Feature, opts Options) ([]Result, error) {
	switch refs[0].Geometry.(type) {
	case orb.Point:
		pts := make([]orb.Point, len(refs))
		for i, f := range refs {
			p, ok := f.Geometry.(orb.Point)
			if !ok {
				return nil, fmt.Errorf("%w: reference feature %d is %s, want Point", entities.ErrSchema, i, geometryType(f.Geometry))
			}
			pts[i] = p
		}
		return NearestPoints(queries, pts, opts)
	case orb.LineString:
		lines := make([]orb.LineString, len(refs))
		for i, f := range refs {
			ls, ok := f.Geometry.(orb.LineString)
			if !ok {
				return nil, fmt.Errorf("%w: reference feature %d is %s, want LineString", entities.ErrSchema, i, geometryType(f.Geometry))
			}
			lines[i] = ls
		}
		return NearestLines(queries, lines, opts)
	default:
		return nil, fmt.Errorf("%w: reference features must be Point or LineString, got %s", entities.ErrSchema, geometryType(refs[0].Geometry))
	}
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}
