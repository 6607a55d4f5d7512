// Package cube provides a labeled N-dimensional array data model, a
// self-describing binary container for storing such arrays, and
// constraint-based extraction of a single matching sub-array with
// physical-unit harmonisation.
package cube

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scigolib/cube/internal/units"
)

// ScalarCoord marks a coordinate that does not index any dimension.
const ScalarCoord = -1

// Coord is a named, unit-bearing array of values indexing one dimension of a
// cube, or describing the cube as a whole when scalar (Dim == ScalarCoord).
type Coord struct {
	Name   string
	Units  string
	Dim    int
	Points []float64
}

// Cube is an N-dimensional labeled numeric array. Data is row-major with
// len(Data) equal to the product of Shape.
type Cube struct {
	Name       string
	Units      string
	Attributes map[string]string
	Shape      []int
	Data       []float64
	Coords     []*Coord
}

// Coord returns the named coordinate, or ErrCoordinateNotFound.
func (c *Cube) Coord(name string) (*Coord, error) {
	for _, co := range c.Coords {
		if co.Name == name {
			return co, nil
		}
	}
	return nil, fmt.Errorf("coordinate %q not found on cube %q: %w", name, c.Name, ErrCoordinateNotFound)
}

// HasCoord reports whether the cube carries a coordinate with the given name.
func (c *Cube) HasCoord(name string) bool {
	_, err := c.Coord(name)
	return err == nil
}

// CoordNames returns the names of all coordinates in declaration order.
func (c *Cube) CoordNames() []string {
	names := make([]string, len(c.Coords))
	for i, co := range c.Coords {
		names[i] = co.Name
	}
	return names
}

// dimCoord returns the first coordinate indexing dimension d, or nil.
func (c *Cube) dimCoord(d int) *Coord {
	for _, co := range c.Coords {
		if co.Dim == d {
			return co
		}
	}
	return nil
}

// Size returns the total number of data elements.
func (c *Cube) Size() int {
	n := 1
	for _, d := range c.Shape {
		n *= d
	}
	return n
}

// Copy returns a deep copy of the cube. The copy shares nothing with the
// receiver.
func (c *Cube) Copy() *Cube {
	out := &Cube{
		Name:  c.Name,
		Units: c.Units,
		Shape: append([]int(nil), c.Shape...),
		Data:  append([]float64(nil), c.Data...),
	}
	if c.Attributes != nil {
		out.Attributes = make(map[string]string, len(c.Attributes))
		for k, v := range c.Attributes {
			out.Attributes[k] = v
		}
	}
	out.Coords = make([]*Coord, len(c.Coords))
	for i, co := range c.Coords {
		out.Coords[i] = &Coord{
			Name:   co.Name,
			Units:  co.Units,
			Dim:    co.Dim,
			Points: append([]float64(nil), co.Points...),
		}
	}
	return out
}

// Validate checks the structural invariants of the cube: data length matches
// shape, and every dimension coordinate matches the size of its dimension.
func (c *Cube) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("cube has no name")
	}
	if len(c.Data) != c.Size() {
		return fmt.Errorf("cube %q: data length %d does not match shape %v", c.Name, len(c.Data), c.Shape)
	}
	for _, co := range c.Coords {
		if co.Dim == ScalarCoord {
			continue
		}
		if co.Dim < 0 || co.Dim >= len(c.Shape) {
			return fmt.Errorf("cube %q: coordinate %q indexes dimension %d of %d-dimensional cube", c.Name, co.Name, co.Dim, len(c.Shape))
		}
		if len(co.Points) != c.Shape[co.Dim] {
			return fmt.Errorf("cube %q: coordinate %q has %d points for dimension of size %d", c.Name, co.Name, len(co.Points), c.Shape[co.Dim])
		}
	}
	return nil
}

// SliceAt returns a new cube with dimension dim dropped, keeping only the
// data at the given index along it. The coordinate indexing dim becomes a
// scalar coordinate holding the selected point. The receiver is not modified.
func (c *Cube) SliceAt(dim, index int) (*Cube, error) {
	if dim < 0 || dim >= len(c.Shape) {
		return nil, fmt.Errorf("cube %q: no dimension %d to slice", c.Name, dim)
	}
	if index < 0 || index >= c.Shape[dim] {
		return nil, fmt.Errorf("cube %q: index %d out of range for dimension %d of size %d", c.Name, index, dim, c.Shape[dim])
	}

	n := c.Shape[dim]
	inner := 1
	for _, d := range c.Shape[dim+1:] {
		inner *= d
	}
	outer := 1
	for _, d := range c.Shape[:dim] {
		outer *= d
	}

	data := make([]float64, outer*inner)
	for o := 0; o < outer; o++ {
		src := (o*n + index) * inner
		copy(data[o*inner:(o+1)*inner], c.Data[src:src+inner])
	}

	shape := make([]int, 0, len(c.Shape)-1)
	shape = append(shape, c.Shape[:dim]...)
	shape = append(shape, c.Shape[dim+1:]...)

	out := c.Copy()
	out.Shape = shape
	out.Data = data
	for _, co := range out.Coords {
		switch {
		case co.Dim == dim:
			co.Points = []float64{co.Points[index]}
			co.Dim = ScalarCoord
		case co.Dim > dim:
			co.Dim--
		}
	}

	return out, nil
}

// ConvertCoordUnits rescales the named coordinate's points into the target
// unit, in place.
func (c *Cube) ConvertCoordUnits(name, target string) error {
	co, err := c.Coord(name)
	if err != nil {
		return err
	}
	points, err := units.Convert(co.Points, co.Units, target)
	if err != nil {
		return fmt.Errorf("coordinate %q on cube %q: %w", name, c.Name, err)
	}
	co.Points = points
	co.Units = target
	return nil
}

// ConvertUnits rescales the cube's data into the target unit, in place.
func (c *Cube) ConvertUnits(target string) error {
	data, err := units.Convert(c.Data, c.Units, target)
	if err != nil {
		return fmt.Errorf("cube %q: %w", c.Name, err)
	}
	c.Data = data
	c.Units = target
	return nil
}

// Rename sets the cube's name.
func (c *Cube) Rename(name string) {
	c.Name = name
}

// RemoveCoord removes the named coordinate. The data is unchanged; removing
// a dimension coordinate leaves its dimension anonymous.
func (c *Cube) RemoveCoord(name string) error {
	for i, co := range c.Coords {
		if co.Name == name {
			c.Coords = append(c.Coords[:i], c.Coords[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("coordinate %q not found on cube %q: %w", name, c.Name, ErrCoordinateNotFound)
}

// Summary returns a deterministic human-readable description of the cube.
func (c *Cube) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) %v\n", c.Name, orUnknown(c.Units), c.Shape)
	for _, co := range c.Coords {
		if co.Dim == ScalarCoord {
			fmt.Fprintf(&b, "    %s (%s) scalar: %g\n", co.Name, orUnknown(co.Units), co.Points)
		} else {
			fmt.Fprintf(&b, "    %s (%s) dim %d: %d points\n", co.Name, orUnknown(co.Units), co.Dim, len(co.Points))
		}
	}
	if len(c.Attributes) > 0 {
		keys := make([]string, 0, len(c.Attributes))
		for k := range c.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "    attribute %s: %s\n", k, c.Attributes[k])
		}
	}
	return b.String()
}

func orUnknown(u string) string {
	if u == "" {
		return "unknown"
	}
	return u
}
