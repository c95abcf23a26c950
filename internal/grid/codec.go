package grid

import (
	"fmt"

	"github.com/paulmach/orb"
	"transgrid/internal/domain/entities"
)

// codec is one family's set of plane-space operations. Coordinates are in the
// normalized plane (one unit per cell edge); Params handles the lon/lat side.
type codec struct {
	encode   func(x, y float64) GridID
	centroid func(id GridID) (x, y float64)
	vertices func(id GridID) [][2]float64
	// valid rejects component combinations the family can never produce.
	valid func(id GridID) bool
	// candidates visits a superset of the cells that can intersect the
	// plane-space rectangle [minX, maxX] x [minY, maxY].
	candidates func(minX, minY, maxX, maxY float64, visit func(GridID))
}

// codecs is the dispatch table: one entry per Family, no open-ended registry.
var codecs = map[Family]codec{
	Rect: rectCodec,
	Tri:  triCodec,
	Hexa: hexaCodec,
}

// Encode returns the id of the cell containing pt.
func (p Params) Encode(pt orb.Point) (GridID, error) {
	if !finite(pt.Lon()) || !finite(pt.Lat()) {
		return GridID{}, fmt.Errorf("%w: coordinate (%v, %v) is not finite", entities.ErrSchema, pt.Lon(), pt.Lat())
	}
	c, err := p.codecFor()
	if err != nil {
		return GridID{}, err
	}
	x, y := p.toPlane(pt)
	id := c.encode(x, y)
	id.Family = p.Family
	return id, nil
}

// Centroid returns the cell's center: the arithmetic center of a rectangle or
// triangle, the hexagon center for Hexa.
func (p Params) Centroid(id GridID) (orb.Point, error) {
	c, err := p.decoder(id)
	if err != nil {
		return orb.Point{}, err
	}
	x, y := c.centroid(id)
	return p.fromPlane(x, y), nil
}

// Polygon returns the cell's boundary as a closed ring: 4, 3 or 6 distinct
// vertices for Rect, Tri and Hexa, counter-clockwise, first vertex repeated.
func (p Params) Polygon(id GridID) (orb.Polygon, error) {
	c, err := p.decoder(id)
	if err != nil {
		return nil, err
	}
	return p.polygon(c, id), nil
}

func (p Params) polygon(c codec, id GridID) orb.Polygon {
	verts := c.vertices(id)
	ring := make(orb.Ring, 0, len(verts)+1)
	for _, v := range verts {
		ring = append(ring, p.fromPlane(v[0], v[1]))
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

func (p Params) codecFor() (codec, error) {
	c, ok := codecs[p.Family]
	if !ok {
		return codec{}, fmt.Errorf("%w: unknown grid family %d", entities.ErrSchema, int(p.Family))
	}
	return c, nil
}

func (p Params) decoder(id GridID) (codec, error) {
	if id.Family != p.Family {
		return codec{}, fmt.Errorf("%w: %s id decoded with %s params", entities.ErrSchema, id.Family, p.Family)
	}
	c, err := p.codecFor()
	if err != nil {
		return codec{}, err
	}
	if !c.valid(id) {
		return codec{}, fmt.Errorf("%w: %+v is not a valid %s cell", entities.ErrSchema, id, p.Family)
	}
	return c, nil
}
