package match

import (
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"transgrid/internal/domain/entities"
	"transgrid/internal/geo"
)

func TestNearestPoints_Scenario(t *testing.T) {
	refs := []orb.Point{{0, 0}, {10, 10}}
	results, err := NearestPoints([]orb.Point{{1, 1}}, refs, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, 0, results[0].Query)
	assert.Equal(t, 0, results[0].Ref)
	assert.InDelta(t, math.Sqrt2, results[0].Distance, 1e-9)
	assert.Equal(t, orb.Point{0, 0}, results[0].Vertex)
}

func TestNearestPoints_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	random := func(n int) []orb.Point {
		pts := make([]orb.Point, n)
		for i := range pts {
			pts[i] = orb.Point{113.9 + rng.Float64()*0.2, 22.5 + rng.Float64()*0.2}
		}
		return pts
	}
	refs, queries := random(300), random(200)

	results, err := NearestPoints(queries, refs, Options{})
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	for i, q := range queries {
		best := math.Inf(1)
		for _, r := range refs {
			best = math.Min(best, geo.Euclidean(q, r))
		}
		assert.Equal(t, i, results[i].Query, "input order preserved")
		assert.InDelta(t, best, results[i].Distance, 1e-12)
		assert.InDelta(t, best, geo.Euclidean(q, refs[results[i].Ref]), 1e-12)
	}
}

func TestNearestPoints_Geodesic(t *testing.T) {
	refs := []orb.Point{{114.0, 22.5}, {114.5, 23.0}}
	q := orb.Point{114.01, 22.5}

	results, err := NearestPoints([]orb.Point{q}, refs, Options{Geodesic: true})
	require.NoError(t, err)
	assert.Equal(t, 0, results[0].Ref)
	assert.InDelta(t, geo.Haversine(q, refs[0]), results[0].Distance, 1e-6)
	assert.InDelta(t, 1028, results[0].Distance, 5, "0.01° of longitude at 22.5°N")
}

func TestNearestLines(t *testing.T) {
	lines := []orb.LineString{
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 5}, {1, 5}, {2, 5}, {3, 5}},
		{{10, 10}},
	}
	queries := []orb.Point{{1.9, 4.2}, {0.1, 0.3}, {9, 9}}

	results, err := NearestLines(queries, lines, Options{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 1, results[0].Ref)
	assert.Equal(t, orb.Point{2, 5}, results[0].Vertex)
	assert.InDelta(t, math.Hypot(0.1, 0.8), results[0].Distance, 1e-12)
	assert.Equal(t, 0, results[1].Ref)
	assert.Equal(t, 2, results[2].Ref)
}

func TestNearestLines_VertexApproximation(t *testing.T) {
	// The segment passes right by the query, but only its far vertices are
	// indexed, so the short line wins.
	lines := []orb.LineString{
		{{-100, 0}, {100, 0}},
		{{0, 3}, {1, 3}},
	}
	results, err := NearestLines([]orb.Point{{0, 0.5}}, lines, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, results[0].Ref)
	assert.InDelta(t, 2.5, results[0].Distance, 1e-12)
}

func TestNearest_Errors(t *testing.T) {
	pts := []orb.Point{{0, 0}}

	_, err := NearestPoints(nil, pts, Options{})
	assert.ErrorIs(t, err, entities.ErrEmptyInput)
	_, err = NearestPoints(pts, nil, Options{})
	assert.ErrorIs(t, err, entities.ErrEmptyInput)
	_, err = NearestLines(pts, nil, Options{})
	assert.ErrorIs(t, err, entities.ErrEmptyInput)
	_, err = NearestLines(pts, []orb.LineString{{{0, 0}}, {}}, Options{})
	assert.ErrorIs(t, err, entities.ErrSchema)
	_, err = NearestPoints([]orb.Point{{math.NaN(), 0}}, pts, Options{})
	assert.ErrorIs(t, err, entities.ErrSchema)
}

func TestJoinNearest(t *testing.T) {
	a := []entities.Record{
		{"lon": 0.9, "lat": 1.1, "id": "a0"},
		{"lon": 9.0, "lat": 9.5, "id": "a1"},
	}
	b := []entities.Record{
		{"slon": 0.0, "slat": 0.0, "id": "s0", "name": "depot"},
		{"slon": 1.0, "slat": 1.0, "id": "s1", "name": "market"},
		{"slon": 10.0, "slat": 10.0, "id": "s2", "name": "harbour"},
	}

	out, err := JoinNearest(a, entities.ColumnPair{}, b, entities.ColumnPair{Lon: "slon", Lat: "slat"}, Options{})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "a0", out[0]["id_x"])
	assert.Equal(t, "s1", out[0]["id_y"])
	assert.Equal(t, "market", out[0]["name"])
	assert.Equal(t, 0.9, out[0]["lon"], "unshared columns keep their names")
	assert.Equal(t, 1, out[0][IndexColumn])
	assert.InDelta(t, math.Hypot(0.1, 0.1), out[0][DistColumn], 1e-12)
	assert.NotContains(t, out[0], "id")

	assert.Equal(t, 2, out[1][IndexColumn])
	assert.Len(t, a[0], 3, "input rows untouched")
}

func TestJoinNearest_SameColumnNames(t *testing.T) {
	a := []entities.Record{{"lon": 114.0, "lat": 22.5}}
	b := []entities.Record{{"lon": 114.001, "lat": 22.5}}

	out, err := JoinNearest(a, entities.ColumnPair{}, b, entities.ColumnPair{}, Options{Geodesic: true})
	require.NoError(t, err)
	assert.Equal(t, 114.0, out[0]["lon_x"])
	assert.Equal(t, 114.001, out[0]["lon_y"])
	assert.InDelta(t, 102.8, out[0][DistColumn], 1)
}

func TestJoinNearest_Errors(t *testing.T) {
	rows := []entities.Record{{"lon": 1.0, "lat": 1.0}}

	_, err := JoinNearest(nil, entities.ColumnPair{}, rows, entities.ColumnPair{}, Options{})
	assert.ErrorIs(t, err, entities.ErrEmptyInput)
	_, err = JoinNearest(rows, entities.ColumnPair{}, []entities.Record{}, entities.ColumnPair{}, Options{})
	assert.ErrorIs(t, err, entities.ErrEmptyInput)

	_, err = JoinNearest(rows, entities.ColumnPair{}, rows, entities.ColumnPair{Lon: "x", Lat: "y"}, Options{})
	require.ErrorIs(t, err, entities.ErrSchema)
	assert.Contains(t, err.Error(), "right table")
}

func TestJoinNearestFeatures(t *testing.T) {
	a := geojson.NewFeatureCollection()
	q := geojson.NewFeature(orb.Point{0.5, 0.2})
	q.Properties["vid"] = "bus-1"
	a.Append(q)

	roads := geojson.NewFeatureCollection()
	r0 := geojson.NewFeature(orb.LineString{{0, 0}, {1, 0}})
	r0.Properties["name"] = "Shennan Rd"
	r1 := geojson.NewFeature(orb.LineString{{0, 5}, {1, 5}})
	r1.Properties["name"] = "Binhe Rd"
	roads.Append(r0)
	roads.Append(r1)

	out, err := JoinNearestFeatures(a, roads, Options{})
	require.NoError(t, err)
	require.Len(t, out.Features, 1)

	f := out.Features[0]
	assert.Equal(t, orb.Point{0.5, 0.2}, f.Geometry)
	assert.Equal(t, "bus-1", f.Properties["vid"])
	assert.Equal(t, "Shennan Rd", f.Properties["name"])
	assert.Equal(t, 0, f.Properties[IndexColumn])

	stops := geojson.NewFeatureCollection()
	stops.Append(geojson.NewFeature(orb.Point{3, 3}))
	stops.Append(geojson.NewFeature(orb.Point{0.4, 0.4}))
	out, err = JoinNearestFeatures(a, stops, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Features[0].Properties[IndexColumn])
}

func TestJoinNearestFeatures_Errors(t *testing.T) {
	pts := geojson.NewFeatureCollection()
	pts.Append(geojson.NewFeature(orb.Point{0, 0}))

	_, err := JoinNearestFeatures(geojson.NewFeatureCollection(), pts, Options{})
	assert.ErrorIs(t, err, entities.ErrEmptyInput)

	mixed := geojson.NewFeatureCollection()
	mixed.Append(geojson.NewFeature(orb.Point{0, 0}))
	mixed.Append(geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}}))
	_, err = JoinNearestFeatures(pts, mixed, Options{})
	assert.ErrorIs(t, err, entities.ErrSchema)

	polys := geojson.NewFeatureCollection()
	polys.Append(geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}))
	_, err = JoinNearestFeatures(polys, pts, Options{})
	assert.ErrorIs(t, err, entities.ErrSchema)
}

func BenchmarkNearestPoints(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	refs := make([]orb.Point, 10000)
	for i := range refs {
		refs[i] = orb.Point{rng.Float64(), rng.Float64()}
	}
	queries := refs[:1000]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = NearestPoints(queries, refs, Options{})
	}
}
