package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"transgrid/internal/domain/entities"
)

// samplesPerPiece is how many evenly spaced points describe each split piece.
const samplesPerPiece = 10

// SplitLine cuts a linestring into consecutive pieces no longer than maxLength
// (in coordinate units; project first for meters). Each piece is resampled at
// samplesPerPiece points interpolated along the original line, so bends inside
// a piece are approximated rather than preserved.
func SplitLine(ls orb.LineString, maxLength float64) ([]orb.LineString, error) {
	if maxLength <= 0 || math.IsNaN(maxLength) {
		return nil, fmt.Errorf("%w: max length %v must be positive", entities.ErrInvalidSize, maxLength)
	}
	if len(ls) < 2 {
		return nil, fmt.Errorf("%w: linestring needs at least two vertices, got %d", entities.ErrSchema, len(ls))
	}

	total := planar.Length(ls)
	if total == 0 {
		return []orb.LineString{ls.Clone()}, nil
	}

	// cumulative[i] is the distance along the line at vertex i.
	cumulative := make([]float64, len(ls))
	for i := 1; i < len(ls); i++ {
		cumulative[i] = cumulative[i-1] + planar.Distance(ls[i-1], ls[i])
	}

	n := int(math.Ceil(total / maxLength))
	pieces := make([]orb.LineString, 0, n)
	for k := 0; k < n; k++ {
		start := float64(k) * maxLength
		end := math.Min(float64(k+1)*maxLength, total)

		piece := make(orb.LineString, samplesPerPiece)
		for s := 0; s < samplesPerPiece; s++ {
			d := start + (end-start)*float64(s)/float64(samplesPerPiece-1)
			piece[s] = interpolate(ls, cumulative, d)
		}
		pieces = append(pieces, piece)
	}
	return pieces, nil
}

// interpolate returns the point at distance d along ls.
func interpolate(ls orb.LineString, cumulative []float64, d float64) orb.Point {
	if d <= 0 {
		return ls[0]
	}
	last := len(ls) - 1
	if d >= cumulative[last] {
		return ls[last]
	}

	i := 1
	for cumulative[i] < d {
		i++
	}
	seg := cumulative[i] - cumulative[i-1]
	if seg == 0 {
		return ls[i]
	}
	t := (d - cumulative[i-1]) / seg
	return orb.Point{
		ls[i-1][0] + (ls[i][0]-ls[i-1][0])*t,
		ls[i-1][1] + (ls[i][1]-ls[i-1][1])*t,
	}
}
