package grid

var rectCodec = codec{
	encode: func(x, y float64) GridID {
		return GridID{I: floor(x), J: floor(y)}
	},
	centroid: func(id GridID) (float64, float64) {
		return float64(id.I) + 0.5, float64(id.J) + 0.5
	},
	vertices: func(id GridID) [][2]float64 {
		x, y := float64(id.I), float64(id.J)
		return [][2]float64{{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}}
	},
	valid: func(id GridID) bool {
		return id.K == 0
	},
	candidates: func(minX, minY, maxX, maxY float64, visit func(GridID)) {
		for j := floor(minY); j <= floor(maxY); j++ {
			for i := floor(minX); i <= floor(maxX); i++ {
				visit(GridID{I: i, J: j})
			}
		}
	},
}
