package cube

import (
	"fmt"
)

// Extract loads the cubes stored at path and returns the one cube matching
// every constraint. The pipeline is a single synchronous pass:
// load, filter by name, filter by coordinates with unit conversion, check
// cardinality. The source file is never modified; unit conversions are
// applied to in-memory copies only, and the returned cube's coordinates
// carry the requested units.
//
// Exactly one cube must survive: zero survivors return ErrNoMatch, several
// return ErrAmbiguousMatch. A constraint or unit-override key that is not a
// coordinate on a candidate cube returns ErrCoordinateNotFound, including a
// unit supplied for the name selector.
func Extract(path string, cs *Constraints) (*Cube, error) {
	if cs == nil {
		cs = &Constraints{}
	}

	// The name selector is not a coordinate, so a unit override for it can
	// never be applied. Rejected before touching the file.
	if cs.nameUnits != "" {
		return nil, fmt.Errorf("units %q supplied for %q, which is not a coordinate: %w", cs.nameUnits, NameKey, ErrCoordinateNotFound)
	}

	cubes, err := Load(path)
	if err != nil {
		return nil, err
	}

	candidates := cubes
	if cs.hasName {
		candidates = nil
		for _, c := range cubes {
			if c.Name == cs.name {
				candidates = append(candidates, c)
			}
		}
	}

	var matches []*Cube
	for _, c := range candidates {
		m, ok, err := applySelectors(c, cs.coords)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, m)
		}
	}

	switch len(matches) {
	case 0:
		return nil, ErrNoMatch
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %d cubes left after filtering", ErrAmbiguousMatch, len(matches))
	}
}

// applySelectors applies every coordinate selector to a copy of the cube,
// converting coordinate units before comparison where an override is given.
// It returns the filtered cube and whether every selector matched. A selector
// key missing from the cube's coordinates is an error, not a non-match.
func applySelectors(c *Cube, sels []CoordSelector) (*Cube, bool, error) {
	out := c.Copy()
	for _, s := range sels {
		if s.Units != "" {
			if err := out.ConvertCoordUnits(s.Key, s.Units); err != nil {
				return nil, false, err
			}
		}

		co, err := out.Coord(s.Key)
		if err != nil {
			return nil, false, err
		}

		idx := matchingPoints(co, s.Value)
		switch {
		case len(idx) == 0:
			return nil, false, nil
		case len(idx) == len(co.Points):
			// Every position satisfies the constraint; nothing to slice.
		case len(idx) == 1:
			out, err = out.SliceAt(co.Dim, idx[0])
			if err != nil {
				return nil, false, err
			}
		default:
			return nil, false, fmt.Errorf("%w: %s=%s matches %d positions on coordinate %q",
				ErrAmbiguousMatch, s.Key, s.Value, len(idx), s.Key)
		}
	}
	return out, true, nil
}

func matchingPoints(co *Coord, v Value) []int {
	var idx []int
	for i, p := range co.Points {
		if v.Matches(p) {
			idx = append(idx, i)
		}
	}
	return idx
}
