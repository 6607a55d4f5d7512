package cube

import (
	"os"

	"github.com/scigolib/cube/internal/codec"
	"github.com/scigolib/cube/internal/utils"
)

// Load reads every cube stored in the CUBE container at path. The file is
// closed before Load returns, on success and on error.
func Load(path string) ([]*Cube, error) {
	//nolint:gosec // G304: user-provided path is intentional for a file library
	f, err := os.Open(path)
	if err != nil {
		return nil, utils.WrapError("file open failed", err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, utils.WrapError("file stat failed", err)
	}

	stored, err := codec.Read(f, fi.Size())
	if err != nil {
		return nil, err
	}

	cubes := make([]*Cube, len(stored))
	for i, s := range stored {
		cubes[i] = fromStored(s)
	}
	return cubes, nil
}

// Save writes cubes to a CUBE container at path, overwriting any existing
// file. Every cube is validated before any bytes are written.
func Save(path string, cubes ...*Cube) error {
	stored := make([]*codec.Cube, len(cubes))
	for i, c := range cubes {
		if err := c.Validate(); err != nil {
			return err
		}
		stored[i] = toStored(c)
	}

	//nolint:gosec // G304: user-provided path is intentional for a file library
	f, err := os.Create(path)
	if err != nil {
		return utils.WrapError("file create failed", err)
	}

	if err := codec.Write(f, stored); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fromStored(s *codec.Cube) *Cube {
	c := &Cube{
		Name:       s.Name,
		Units:      s.Units,
		Attributes: s.Attributes,
		Shape:      s.Shape,
		Data:       s.Data,
	}
	c.Coords = make([]*Coord, len(s.Coords))
	for i := range s.Coords {
		sc := &s.Coords[i]
		c.Coords[i] = &Coord{Name: sc.Name, Units: sc.Units, Dim: sc.Dim, Points: sc.Points}
	}
	return c
}

func toStored(c *Cube) *codec.Cube {
	s := &codec.Cube{
		Name:       c.Name,
		Units:      c.Units,
		Attributes: c.Attributes,
		Shape:      c.Shape,
		Data:       c.Data,
	}
	s.Coords = make([]codec.Coord, len(c.Coords))
	for i, co := range c.Coords {
		s.Coords[i] = codec.Coord{Name: co.Name, Units: co.Units, Dim: co.Dim, Points: co.Points}
	}
	return s
}
