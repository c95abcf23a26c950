package match

import (
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// vertex is one indexed reference coordinate. owner is the row of the point
// or line it came from; kdtree.New reorders the slice while building, so
// the back-reference has to travel with the coordinate.
type vertex struct {
	pt    orb.Point
	owner int
}

// Compare satisfies kdtree.Comparable. Dimension 0 is x (lon), 1 is y (lat).
func (v vertex) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(vertex)
	switch d {
	case 0:
		return v.pt[0] - q.pt[0]
	case 1:
		return v.pt[1] - q.pt[1]
	default:
		panic("match: illegal dimension")
	}
}

func (v vertex) Dims() int { return 2 }

// Distance is the squared coordinate-space distance, as kdtree expects.
func (v vertex) Distance(c kdtree.Comparable) float64 {
	q := c.(vertex)
	dx, dy := v.pt[0]-q.pt[0], v.pt[1]-q.pt[1]
	return dx*dx + dy*dy
}

// vertices satisfies kdtree.Interface.
type vertices []vertex

func (v vertices) Index(i int) kdtree.Comparable         { return v[i] }
func (v vertices) Len() int                              { return len(v) }
func (v vertices) Pivot(d kdtree.Dim) int                { return plane{vertices: v, Dim: d}.Pivot() }
func (v vertices) Slice(start, end int) kdtree.Interface { return v[start:end] }

// plane sorts vertices along one dimension while the tree is built.
type plane struct {
	kdtree.Dim
	vertices
}

func (p plane) Less(i, j int) bool {
	return p.vertices[i].pt[p.Dim] < p.vertices[j].pt[p.Dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}

// index is a k-d tree over reference vertices. It lives for a single call.
type index struct {
	tree *kdtree.Tree
}

func newIndex(vs vertices) *index {
	return &index{tree: kdtree.New(vs, false)}
}

// nearest returns the closest vertex to q and its coordinate-space distance.
// Ties go to whichever vertex the tree visits first.
func (ix *index) nearest(q orb.Point) (vertex, float64) {
	c, d2 := ix.tree.Nearest(vertex{pt: q, owner: -1})
	return c.(vertex), math.Sqrt(d2)
}
