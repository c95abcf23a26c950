package match

import (
	"fmt"

	"transgrid/internal/domain/entities"
)

// Columns added to every joined row.
const (
	IndexColumn = "index"
	DistColumn  = "dist"
)

// Suffixes for column names present on both sides of a join.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// JoinNearest attaches to every row of a the columns of its nearest row in b.
// Column names that appear in both tables are suffixed with _x (from a) and
// _y (from b); every output row also carries "index" (the row of b) and
// "dist". Output is in the order of a, and neither input is modified.
func JoinNearest(a []entities.Record, aCols entities.ColumnPair, b []entities.Record, bCols entities.ColumnPair, opts Options) ([]entities.Record, error) {
	if len(a) == 0 {
		return nil, fmt.Errorf("%w: left table is empty", entities.ErrEmptyInput)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: right table is empty", entities.ErrEmptyInput)
	}

	qa, err := entities.Points(a, aCols)
	if err != nil {
		return nil, fmt.Errorf("left table: %w", err)
	}
	pb, err := entities.Points(b, bCols)
	if err != nil {
		return nil, fmt.Errorf("right table: %w", err)
	}

	results, err := NearestPoints(qa, pb, opts)
	if err != nil {
		return nil, err
	}

	shared := sharedColumns(a, b)
	out := make([]entities.Record, len(a))
	for i, r := range results {
		out[i] = mergeRows(a[i], b[r.Ref], shared, r)
	}
	return out, nil
}

// sharedColumns is the set of column names used by at least one row on each
// side, ignoring the columns the join itself writes.
func sharedColumns(a, b []entities.Record) map[string]bool {
	left := make(map[string]bool)
	for _, r := range a {
		for k := range r {
			left[k] = true
		}
	}
	shared := make(map[string]bool)
	for _, r := range b {
		for k := range r {
			if left[k] && k != IndexColumn && k != DistColumn {
				shared[k] = true
			}
		}
	}
	return shared
}

func mergeRows(left, right entities.Record, shared map[string]bool, r Result) entities.Record {
	row := make(entities.Record, len(left)+len(right)+2)
	for k, v := range left {
		if shared[k] {
			k += LeftSuffix
		}
		row[k] = v
	}
	for k, v := range right {
		if shared[k] {
			k += RightSuffix
		}
		row[k] = v
	}
	row[IndexColumn] = r.Ref
	row[DistColumn] = r.Distance
	return row
}
