package entities

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Default coordinate column names, matching the trajectory tables produced by
// the cleaning stages upstream.
const (
	DefaultLonColumn = "lon"
	DefaultLatColumn = "lat"
)

// Record is one row of a flat point table: coordinates plus any payload
// columns. The caller owns the table; gridding and matching only ever return
// clones with extra columns.
//
// Go Learning Note — Named Map Types:
// Declaring `type Record map[string]any` gives the map methods of its own
// while keeping map literal syntax and JSON decoding for free. A Record
// decoded from JSON holds float64 for every number.
type Record map[string]any

// Clone returns a shallow copy with room for extra columns.
func (r Record) Clone(extra int) Record {
	out := make(Record, len(r)+extra)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Coord reads the point stored under the given column names.
func (r Record) Coord(lonCol, latCol string) (orb.Point, error) {
	lon, err := r.Float(lonCol)
	if err != nil {
		return orb.Point{}, err
	}
	lat, err := r.Float(latCol)
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{lon, lat}, nil
}

// Float reads a numeric, finite column.
func (r Record) Float(col string) (float64, error) {
	v, ok := r[col]
	if !ok {
		return 0, fmt.Errorf("%w: missing column %q", ErrSchema, col)
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: column %q: %v", ErrSchema, col, err)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: column %q is %T, want number", ErrSchema, col, v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: column %q is not finite", ErrSchema, col)
	}
	return f, nil
}

// ColumnPair names the longitude/latitude columns of a table.
type ColumnPair struct {
	Lon string `json:"lon"`
	Lat string `json:"lat"`
}

// OrDefault fills empty names with DefaultLonColumn / DefaultLatColumn.
func (c ColumnPair) OrDefault() ColumnPair {
	if c.Lon == "" {
		c.Lon = DefaultLonColumn
	}
	if c.Lat == "" {
		c.Lat = DefaultLatColumn
	}
	return c
}

// Points extracts every row's coordinate, failing on the first bad row.
func Points(records []Record, cols ColumnPair) ([]orb.Point, error) {
	cols = cols.OrDefault()
	pts := make([]orb.Point, len(records))
	for i, r := range records {
		p, err := r.Coord(cols.Lon, cols.Lat)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		pts[i] = p
	}
	return pts, nil
}
