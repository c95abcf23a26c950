package grid

import "math"

// Triangles are located on a skewed lattice with basis e1 = (1, 0) and
// e2 = (1/2, √3/2). Each lattice rhombus is split along its short diagonal
// into an upward and a downward triangle; points on the diagonal belong to the
// downward one.
//
// Ids are indexed by row band instead of lattice column so that they start at
// zero from the origin: J is the band floor(y / (√3/2)) and I counts triangles
// left to right along it, the west-most vertex of triangle I sitting at
// x = (I-1)/2. I = 0 is the partial triangle reaching back across x = 0.
// K is the orientation (0 up, 1 down) and always equals (I-J-1) mod 2.
var triHeight = math.Sqrt(3) / 2

// toLattice expresses a plane point in lattice coordinates (s along e1,
// t along e2).
func toLattice(x, y float64) (s, t float64) {
	t = y / triHeight
	s = x - t/2
	return s, t
}

func fromLattice(s, t float64) [2]float64 {
	return [2]float64{s + t/2, t * triHeight}
}

// triID maps lattice cell (i, j) with orientation k to a band id.
func triID(i, j, k int) GridID {
	return GridID{I: 2*i + j + k + 1, J: j, K: k}
}

// triLattice is the inverse of triID. The id must be valid.
func triLattice(id GridID) (i, j float64) {
	return float64((id.I - id.J - id.K - 1) / 2), float64(id.J)
}

var triCodec = codec{
	encode: func(x, y float64) GridID {
		s, t := toLattice(x, y)
		i, j := floor(s), floor(t)
		k := 0
		if (s-float64(i))+(t-float64(j)) >= 1 {
			k = 1
		}
		return triID(i, j, k)
	},
	centroid: func(id GridID) (float64, float64) {
		off := 1.0 / 3
		if id.K == 1 {
			off = 2.0 / 3
		}
		i, j := triLattice(id)
		c := fromLattice(i+off, j+off)
		return c[0], c[1]
	},
	vertices: func(id GridID) [][2]float64 {
		i, j := triLattice(id)
		if id.K == 0 {
			return [][2]float64{fromLattice(i, j), fromLattice(i+1, j), fromLattice(i, j+1)}
		}
		return [][2]float64{fromLattice(i+1, j), fromLattice(i+1, j+1), fromLattice(i, j+1)}
	},
	valid: func(id GridID) bool {
		return (id.K == 0 || id.K == 1) && id.K == (id.I-id.J-1)&1
	},
	candidates: func(minX, minY, maxX, maxY float64, visit func(GridID)) {
		for j := floor(minY / triHeight); j <= floor(maxY/triHeight); j++ {
			// Within band j, t spans [j, j+1], so s = x - t/2 spans
			// [minX - (j+1)/2, maxX - j/2].
			lo := floor(minX - float64(j+1)/2)
			hi := floor(maxX - float64(j)/2)
			for i := lo; i <= hi; i++ {
				visit(triID(i, j, 0))
				visit(triID(i, j, 1))
			}
		}
	},
}
