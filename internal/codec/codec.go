// Package codec implements the CUBE container format: a self-describing
// binary file holding one or more labeled N-dimensional float64 arrays.
//
// Layout:
//
//	bytes 0-7    signature "\x89CUBE\r\n\x1a\n"
//	byte  8      format version (currently 1)
//	byte  9      flags (reserved, zero)
//	bytes 10-11  cube count (uint16, little endian)
//	bytes 12-15  index length in bytes (uint32, little endian)
//	bytes 16-    JSON cube index
//	...          cube payloads, little-endian float64, back to back
//
// Data offsets recorded in the index are absolute file offsets.
package codec

const (
	// Signature identifies a CUBE container file.
	Signature = "\x89CUBE\r\n\x1a"

	// Version is the current format version.
	Version = 1

	// headerSize is signature plus superblock.
	headerSize = 16
)

// Coord describes one named coordinate of a cube as stored in the index.
// Dim is the dimension the coordinate indexes, or -1 for a scalar coordinate.
type Coord struct {
	Name   string    `json:"name"`
	Units  string    `json:"units,omitempty"`
	Dim    int       `json:"dim"`
	Points []float64 `json:"points"`
}

// Cube is the storage-level representation of a cube: index metadata plus
// its decoded payload.
type Cube struct {
	Name       string            `json:"name"`
	Units      string            `json:"units,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Shape      []int             `json:"shape"`
	Coords     []Coord           `json:"coords,omitempty"`

	Data []float64 `json:"-"`
}

// cubeEntry is a Cube's index record with payload location.
type cubeEntry struct {
	Cube
	DataOffset uint64 `json:"data_offset"`
	DataLength uint64 `json:"data_length"`
}
