package codec

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/scigolib/cube/internal/utils"
)

// Write encodes cubes into a CUBE container.
func Write(w io.Writer, cubes []*Cube) error {
	if len(cubes) == 0 {
		return errors.New("no cubes to write")
	}
	if len(cubes) > math.MaxUint16 {
		return fmt.Errorf("too many cubes: %d", len(cubes))
	}

	// First pass: index entries with payload locations. Payload starts
	// directly after the index, so the index must be sized before offsets
	// are final. Entries are marshalled twice; index sizes are small.
	entries := make([]cubeEntry, len(cubes))
	for i, c := range cubes {
		length, err := utils.CalculateDataSize(c.Shape, 8)
		if err != nil {
			return utils.WrapError(fmt.Sprintf("cube %q", c.Name), err)
		}
		if int(length/8) != len(c.Data) {
			return fmt.Errorf("cube %q: data length %d does not match shape %v", c.Name, len(c.Data), c.Shape)
		}
		if err := utils.ValidateBufferSize(length, utils.MaxCubeBytes, "cube payload"); err != nil {
			return utils.WrapError(fmt.Sprintf("cube %q", c.Name), err)
		}
		entries[i] = cubeEntry{Cube: *c, DataLength: length}
	}

	indexLen, err := indexSize(entries)
	if err != nil {
		return err
	}

	offset := uint64(headerSize) + indexLen
	for i := range entries {
		entries[i].DataOffset = offset
		offset += entries[i].DataLength
	}

	index, err := json.Marshal(entries)
	if err != nil {
		return utils.WrapError("index encode failed", err)
	}
	if uint64(len(index)) != indexLen {
		return fmt.Errorf("index size changed during encode: %d != %d", len(index), indexLen)
	}
	if err := utils.ValidateBufferSize(indexLen, utils.MaxIndexBytes, "cube index"); err != nil {
		return err
	}

	header := make([]byte, headerSize)
	copy(header, Signature)
	header[8] = Version
	header[9] = 0
	binary.LittleEndian.PutUint16(header[10:12], uint16(len(cubes)))
	binary.LittleEndian.PutUint32(header[12:16], uint32(indexLen))

	if _, err := w.Write(header); err != nil {
		return utils.WrapError("header write failed", err)
	}
	if _, err := w.Write(index); err != nil {
		return utils.WrapError("index write failed", err)
	}

	for i := range entries {
		if err := writePayload(w, entries[i].Data); err != nil {
			return utils.WrapError(fmt.Sprintf("cube %q payload write failed", entries[i].Name), err)
		}
	}

	return nil
}

// indexSize marshals entries with zero offsets to fix the index length.
// Offsets are encoded as JSON numbers whose width depends on the value, so
// the final marshal below pads nothing: offsets only grow the encoding if
// the index itself grew, which indexSize accounts for by remeasuring.
func indexSize(entries []cubeEntry) (uint64, error) {
	probe := make([]cubeEntry, len(entries))
	copy(probe, entries)

	// Iterate until the encoded size is stable under its own offsets.
	size := uint64(0)
	for iter := 0; iter < 8; iter++ {
		offset := uint64(headerSize) + size
		for i := range probe {
			probe[i].DataOffset = offset
			offset += probe[i].DataLength
		}

		b, err := json.Marshal(probe)
		if err != nil {
			return 0, utils.WrapError("index encode failed", err)
		}
		if uint64(len(b)) == size {
			return size, nil
		}
		size = uint64(len(b))
	}

	return 0, errors.New("cube index size did not converge")
}

func writePayload(w io.Writer, data []float64) error {
	buf := make([]byte, len(data)*8)
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	_, err := w.Write(buf)
	return err
}
