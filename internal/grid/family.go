// Package grid maps geographic coordinates onto deterministic, invertible cell
// identifiers over rectangular, triangular and hexagonal tessellations.
//
// A grid is fully described by Params: an origin, the longitude/latitude span
// of one cell unit, and a tessellation family. Every coordinate is first moved
// into the grid's normalized plane, where one unit equals one cell edge, and
// the family's codec does the rest. Encoding is a partition: every finite
// point belongs to exactly one cell, with half-open intervals (lower bound
// inclusive) deciding points that fall on a shared edge.
//
// Go Learning Note — Closed Enums:
// Go has no enum keyword. The idiom is a named integer type plus a block of
// iota constants, with a String method and a parse function. Keeping the set
// closed (no way to register new families from outside the package) lets the
// codec table below be a plain map lookup instead of an interface hierarchy.
package grid

import (
	"fmt"
	"strings"

	"transgrid/internal/domain/entities"
)

// Family tags one of the supported tessellations.
type Family int

const (
	// Rect tiles the plane with axis-aligned rectangles.
	Rect Family = iota + 1
	// Tri tiles the plane with equilateral triangles.
	Tri
	// Hexa tiles the plane with pointy-top regular hexagons.
	Hexa
)

var familyNames = map[Family]string{
	Rect: "rect",
	Tri:  "tri",
	Hexa: "hexa",
}

// ParseFamily accepts "rect", "tri" or "hexa" (case-insensitive).
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rect", "rectangle":
		return Rect, nil
	case "tri", "triangle":
		return Tri, nil
	case "hexa", "hex", "hexagon":
		return Hexa, nil
	}
	return 0, fmt.Errorf("%w: unknown grid family %q", entities.ErrSchema, s)
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Valid reports whether f is one of the declared families.
func (f Family) Valid() bool {
	_, ok := familyNames[f]
	return ok
}

// MarshalText encodes the family by name so JSON carries "rect", not 1.
func (f Family) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: unknown grid family %d", entities.ErrSchema, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (f *Family) UnmarshalText(text []byte) error {
	parsed, err := ParseFamily(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
