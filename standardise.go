package cube

import (
	"errors"
	"strings"
)

// StandardiseOptions are the user-configurable adjustments for Standardise.
// Zero-valued fields are skipped.
type StandardiseOptions struct {
	// NewName renames the cube.
	NewName string

	// NewUnits converts the cube's data into the given unit.
	NewUnits string

	// CoordsToRemove names coordinates to drop. Missing names are ignored.
	CoordsToRemove []string

	// Attributes amends the cube's attributes; the value AttributeRemove
	// deletes an attribute.
	Attributes map[string]string
}

// Standardise applies compulsory and user-configurable metadata adjustments
// and returns the adjusted cube. The compulsory adjustment is to collapse
// any length-1 dimensions, demoting their coordinates to scalar; dimensions
// whose coordinate name contains "realization" are kept as dimensions.
//
// The receiver cube is never modified.
func Standardise(c *Cube, opts StandardiseOptions) (*Cube, error) {
	out, err := collapseScalarDimensions(c.Copy())
	if err != nil {
		return nil, err
	}

	if opts.NewName != "" {
		out.Rename(opts.NewName)
	}
	if opts.NewUnits != "" {
		if err := out.ConvertUnits(opts.NewUnits); err != nil {
			return nil, err
		}
	}
	for _, name := range opts.CoordsToRemove {
		if err := out.RemoveCoord(name); err != nil {
			if errors.Is(err, ErrCoordinateNotFound) {
				continue
			}
			return nil, err
		}
	}
	if len(opts.Attributes) > 0 {
		AmendAttributes(out, opts.Attributes)
	}

	return out, nil
}

func collapseScalarDimensions(c *Cube) (*Cube, error) {
	for {
		dim := -1
		for d, n := range c.Shape {
			if n != 1 {
				continue
			}
			if co := c.dimCoord(d); co != nil && strings.Contains(co.Name, "realization") {
				continue
			}
			dim = d
			break
		}
		if dim < 0 {
			return c, nil
		}

		var err error
		c, err = c.SliceAt(dim, 0)
		if err != nil {
			return nil, err
		}
	}
}
