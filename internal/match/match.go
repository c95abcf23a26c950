// Package match resolves, for every query point, the nearest feature of a
// reference set: the nearest point, or the line owning the nearest vertex.
//
// Every call builds its own k-d tree over the references and discards it on
// return. Nothing is cached between calls, so concurrent calls never share
// state.
package match

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"transgrid/internal/domain/entities"
	"transgrid/internal/geo"
)

// Options tunes how distances are reported. The nearest neighbour itself is
// always chosen in coordinate space.
type Options struct {
	// Geodesic reports haversine meters between the query and the matched
	// vertex instead of the raw coordinate-space distance.
	Geodesic bool `json:"geodesic"`
}

// Result is the best match for one query point.
type Result struct {
	Query    int       `json:"query"`
	Ref      int       `json:"ref"`
	Distance float64   `json:"distance"`
	Vertex   orb.Point `json:"vertex"`
}

// NearestPoints matches every query against the reference points. Results are
// in query order.
func NearestPoints(queries, refs []orb.Point, opts Options) ([]Result, error) {
	if err := checkQueries(queries); err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no reference points", entities.ErrEmptyInput)
	}

	vs := make(vertices, len(refs))
	for i, p := range refs {
		if !finitePoint(p) {
			return nil, fmt.Errorf("%w: reference %d has a non-finite coordinate", entities.ErrSchema, i)
		}
		vs[i] = vertex{pt: p, owner: i}
	}
	return run(newIndex(vs), queries, opts), nil
}

// NearestLines matches every query against the vertices of the reference
// lines and reports the owning line. The distance is to the nearest vertex,
// not to the nearest point on a segment, so densify long segments first
// (geo.SplitLine) when that matters.
func NearestLines(queries []orb.Point, lines []orb.LineString, opts Options) ([]Result, error) {
	if err := checkQueries(queries); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no reference lines", entities.ErrEmptyInput)
	}

	n := 0
	for i, ls := range lines {
		if len(ls) == 0 {
			return nil, fmt.Errorf("%w: reference line %d has no vertices", entities.ErrSchema, i)
		}
		n += len(ls)
	}
	vs := make(vertices, 0, n)
	for i, ls := range lines {
		for _, p := range ls {
			if !finitePoint(p) {
				return nil, fmt.Errorf("%w: reference line %d has a non-finite coordinate", entities.ErrSchema, i)
			}
			vs = append(vs, vertex{pt: p, owner: i})
		}
	}
	return run(newIndex(vs), queries, opts), nil
}

func run(ix *index, queries []orb.Point, opts Options) []Result {
	out := make([]Result, len(queries))
	for i, q := range queries {
		v, d := ix.nearest(q)
		if opts.Geodesic {
			d = geo.Haversine(q, v.pt)
		}
		out[i] = Result{Query: i, Ref: v.owner, Distance: d, Vertex: v.pt}
	}
	return out
}

func checkQueries(queries []orb.Point) error {
	if len(queries) == 0 {
		return fmt.Errorf("%w: no query points", entities.ErrEmptyInput)
	}
	for i, q := range queries {
		if !finitePoint(q) {
			return fmt.Errorf("%w: query %d has a non-finite coordinate", entities.ErrSchema, i)
		}
	}
	return nil
}

func finitePoint(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsInf(p[0], 0) && !math.IsNaN(p[1]) && !math.IsInf(p[1], 0)
}
