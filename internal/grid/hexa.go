package grid

import "math"

// Pointy-top hexagons with unit edge, indexed by row offset: J is the row and
// I the column within it, with odd rows shifted half a hexagon east. The
// center of (col, row) sits at (√3·(col + parity/2), 1.5·row), so hexagons are
// √3 wide and rows are 1.5 apart. K carries the row parity. Points with x, y
// >= 0 always land in col, row >= 0.
var (
	hexWidth     = math.Sqrt(3)
	hexRowOffset = 1.5
)

func parity(row int) int {
	return row & 1
}

func hexCenter(col, row int) (float64, float64) {
	return hexWidth * (float64(col) + float64(parity(row))/2), hexRowOffset * float64(row)
}

// nearestInRow is the column of the closest center on row to plane x.
// Rounding is half-up.
func nearestInRow(x float64, row int) int {
	return floor(x/hexWidth - float64(parity(row))/2 + 0.5)
}

func hexID(col, row int) GridID {
	return GridID{I: col, J: row, K: parity(row)}
}

var hexaCodec = codec{
	// A point between rows r0 and r0+1 is at most 0.75 units (vertically) from
	// one of them and at most √3/2 (horizontally) from a center on it, which
	// is closer than any center two rows away. So the owning hexagon is the
	// nearer of the two per-row candidates; the lower row wins exact ties.
	encode: func(x, y float64) GridID {
		r0 := floor(y / hexRowOffset)

		bestCol, bestRow := nearestInRow(x, r0), r0
		cx, cy := hexCenter(bestCol, bestRow)
		best := (x-cx)*(x-cx) + (y-cy)*(y-cy)

		c1, r1 := nearestInRow(x, r0+1), r0+1
		cx, cy = hexCenter(c1, r1)
		if d := (x-cx)*(x-cx) + (y-cy)*(y-cy); d < best {
			bestCol, bestRow = c1, r1
		}
		return hexID(bestCol, bestRow)
	},
	centroid: func(id GridID) (float64, float64) {
		return hexCenter(id.I, id.J)
	},
	vertices: func(id GridID) [][2]float64 {
		cx, cy := hexCenter(id.I, id.J)
		verts := make([][2]float64, 6)
		for k := range verts {
			sin, cos := math.Sincos(float64(30+60*k) * math.Pi / 180)
			verts[k] = [2]float64{cx + cos, cy + sin}
		}
		return verts
	},
	valid: func(id GridID) bool {
		return id.K == parity(id.J)
	},
	candidates: func(minX, minY, maxX, maxY float64, visit func(GridID)) {
		for r := floor(minY/hexRowOffset) - 1; r <= floor(maxY/hexRowOffset)+1; r++ {
			shift := float64(parity(r)) / 2
			lo := floor(minX/hexWidth-shift) - 1
			hi := floor(maxX/hexWidth-shift) + 1
			for c := lo; c <= hi; c++ {
				visit(hexID(c, r))
			}
		}
	},
}
