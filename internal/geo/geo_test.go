package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"transgrid/internal/domain/entities"
)

func TestNewBoundingArea(t *testing.T) {
	tests := []struct {
		name                           string
		minLon, minLat, maxLon, maxLat float64
		wantErr                        error
	}{
		{name: "Shenzhen", minLon: 113.75, minLat: 22.4, maxLon: 114.62, maxLat: 22.86},
		{name: "inverted longitude", minLon: 114.62, minLat: 22.4, maxLon: 113.75, maxLat: 22.86, wantErr: entities.ErrInvalidBounds},
		{name: "flat latitude", minLon: 113.75, minLat: 22.4, maxLon: 114.62, maxLat: 22.4, wantErr: entities.ErrInvalidBounds},
		{name: "beyond pole", minLon: 0, minLat: 80, maxLon: 1, maxLat: 91, wantErr: entities.ErrInvalidBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			area, err := NewBoundingArea(tt.minLon, tt.minLat, tt.maxLon, tt.maxLat)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, orb.Point{tt.minLon, tt.minLat}, area.Min)
			assert.Equal(t, orb.Point{tt.maxLon, tt.maxLat}, area.Max)
		})
	}
}

func TestBoundingArea_Validate(t *testing.T) {
	tests := []struct {
		name    string
		area    BoundingArea
		wantErr bool
	}{
		{name: "valid literal", area: BoundingArea{Bound: orb.Bound{Min: orb.Point{113.9, 22.5}, Max: orb.Point{114.1, 22.7}}}},
		{name: "inverted literal", area: BoundingArea{Bound: orb.Bound{Min: orb.Point{114.1, 22.7}, Max: orb.Point{113.9, 22.5}}}, wantErr: true},
		{name: "zero value", area: BoundingArea{}, wantErr: true},
		{name: "NaN corner", area: BoundingArea{Bound: orb.Bound{Min: orb.Point{math.NaN(), 22.5}, Max: orb.Point{114.1, 22.7}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.area.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, entities.ErrInvalidBounds)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBoundFromPoints(t *testing.T) {
	_, err := BoundFromPoints(nil)
	assert.ErrorIs(t, err, entities.ErrEmptyInput)

	_, err = BoundFromPoints([]orb.Point{{1, 1}, {1, 1}})
	assert.ErrorIs(t, err, entities.ErrInvalidBounds)

	area, err := BoundFromPoints([]orb.Point{{2, 5}, {1, 7}, {3, 6}})
	require.NoError(t, err)
	assert.Equal(t, orb.Point{1, 5}, area.Min)
	assert.Equal(t, orb.Point{3, 7}, area.Max)
	assert.Equal(t, 6.0, area.MidLat())
}

func TestBoundingArea_Overlaps(t *testing.T) {
	area, err := NewBoundingArea(0, 0, 1, 1)
	require.NoError(t, err)

	assert.True(t, area.Overlaps(orb.Bound{Min: orb.Point{0.5, 0.5}, Max: orb.Point{2, 2}}))
	assert.False(t, area.Overlaps(orb.Bound{Min: orb.Point{1, 0}, Max: orb.Point{2, 1}}), "edge contact is not overlap")
	assert.False(t, area.Overlaps(orb.Bound{Min: orb.Point{3, 3}, Max: orb.Point{4, 4}}))
}

func TestDistances(t *testing.T) {
	assert.InDelta(t, math.Sqrt2, Euclidean(orb.Point{0, 0}, orb.Point{1, 1}), 1e-12)

	// One degree of latitude is ~111.3 km on orb's sphere.
	a, b := orb.Point{114.0, 22.0}, orb.Point{114.0, 23.0}
	assert.InDelta(t, 111319.5, Haversine(a, b), 1)
	assert.InDelta(t, Haversine(a, b), SmallAngle(a, b), 1)

	// Short east-west hop in Shenzhen: the flat approximation tracks haversine.
	c, d := orb.Point{114.05, 22.54}, orb.Point{114.06, 22.545}
	assert.InDelta(t, Haversine(c, d), SmallAngle(c, d), 0.5)
}

func TestMetersToDegrees(t *testing.T) {
	dLon, dLat := MetersToDegrees(500, 0)
	assert.InDelta(t, dLat, dLon, 1e-12, "equator has square degrees")

	dLon, dLat = MetersToDegrees(500, 60)
	assert.InDelta(t, 2*dLat, dLon, 1e-9, "cos(60°) halves a degree of longitude")
	assert.InDelta(t, 500, Haversine(orb.Point{0, 60}, orb.Point{0, 60 + dLat}), 1e-6)
}

func TestExterior_DropsHoles(t *testing.T) {
	outer := orb.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}
	hole := orb.Ring{{1, 1}, {1, 2}, {2, 2}, {2, 1}, {1, 1}}

	got := Exterior(orb.Polygon{outer, hole}, 0)
	require.Len(t, got, 1)
	assert.Equal(t, 16.0, planar.Area(got))

	// Mutating the result leaves the input alone.
	got[0][0] = orb.Point{-1, -1}
	assert.Equal(t, orb.Point{0, 0}, outer[0])

	assert.Nil(t, Exterior(nil, 0))
}

func TestExterior_Simplifies(t *testing.T) {
	// A square with a nearly collinear vertex on its bottom edge.
	ring := orb.Ring{{0, 0}, {2, 0.001}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}

	got := Exterior(orb.Polygon{ring}, 0.01)
	require.Len(t, got, 1)
	assert.Len(t, got[0], 5)
	assert.InDelta(t, 16.0, planar.Area(got), 1e-9)
}

func TestSplitLine(t *testing.T) {
	line := orb.LineString{{0, 0}, {10, 0}, {10, 5}}

	pieces, err := SplitLine(line, 4)
	require.NoError(t, err)
	require.Len(t, pieces, 4)

	for i, p := range pieces {
		assert.Len(t, p, samplesPerPiece)
		assert.LessOrEqual(t, planar.Length(p), 4+1e-9, "piece %d too long", i)
	}
	assert.Equal(t, orb.Point{0, 0}, pieces[0][0])
	assert.Equal(t, orb.Point{10, 5}, pieces[3][samplesPerPiece-1])
	assert.InDelta(t, 15.0, totalLength(pieces), 1.1, "the piece straddling the bend is cut short")

	// Pieces are contiguous.
	for i := 1; i < len(pieces); i++ {
		assert.Equal(t, pieces[i-1][samplesPerPiece-1], pieces[i][0])
	}
}

func TestSplitLine_Errors(t *testing.T) {
	_, err := SplitLine(orb.LineString{{0, 0}, {1, 1}}, 0)
	assert.ErrorIs(t, err, entities.ErrInvalidSize)

	_, err = SplitLine(orb.LineString{{0, 0}}, 1)
	assert.ErrorIs(t, err, entities.ErrSchema)

	pieces, err := SplitLine(orb.LineString{{1, 1}, {1, 1}}, 1)
	require.NoError(t, err)
	assert.Len(t, pieces, 1)
}

func totalLength(pieces []orb.LineString) float64 {
	var sum float64
	for _, p := range pieces {
		sum += planar.Length(p)
	}
	return sum
}

func BenchmarkHaversine(b *testing.B) {
	p, q := orb.Point{114.05, 22.54}, orb.Point{114.1, 22.6}
	for i := 0; i < b.N; i++ {
		Haversine(p, q)
	}
}
