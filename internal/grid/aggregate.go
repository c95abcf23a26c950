package grid

import (
	"sort"

	"github.com/paulmach/orb"
)

// CellStat pairs a cell with the number of points that fell in it and its
// geometry, ready to be rendered or joined downstream.
type CellStat struct {
	ID       GridID      `json:"id"`
	Count    int         `json:"count"`
	Centroid orb.Point   `json:"centroid"`
	Polygon  orb.Polygon `json:"polygon"`
}

// Aggregate buckets points by cell and counts them. Only occupied cells are
// returned, most populated first; equal counts are ordered by id so the output
// is deterministic.
//
// Go Learning Note — Struct Map Keys:
// GridID contains only comparable fields (ints), so it can key a map
// directly; there is no need to format ids into strings like "12_7" first.
// The compiler generates equality and hashing for the struct.
func Aggregate(points []orb.Point, p Params) ([]CellStat, error) {
	ids, err := EncodeAll(points, p)
	if err != nil {
		return nil, err
	}

	counts := make(map[GridID]int)
	for _, id := range ids {
		counts[id]++
	}

	c, err := p.codecFor()
	if err != nil {
		return nil, err
	}
	stats := make([]CellStat, 0, len(counts))
	for id, n := range counts {
		x, y := c.centroid(id)
		stats = append(stats, CellStat{
			ID:       id,
			Count:    n,
			Centroid: p.fromPlane(x, y),
			Polygon:  p.polygon(c, id),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].ID.Less(stats[j].ID)
	})
	return stats, nil
}
