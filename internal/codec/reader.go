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

// Read decodes all cubes from a CUBE container of the given size.
func Read(r io.ReaderAt, size int64) ([]*Cube, error) {
	if size < headerSize {
		return nil, errors.New("not a CUBE file: too short")
	}

	buf := utils.GetBuffer(headerSize)
	defer utils.ReleaseBuffer(buf)

	if _, err := r.ReadAt(buf, 0); err != nil {
		return nil, utils.WrapError("header read failed", err)
	}

	if string(buf[:8]) != Signature {
		return nil, errors.New("not a CUBE file")
	}

	version := buf[8]
	if version != Version {
		return nil, fmt.Errorf("unsupported CUBE format version: %d", version)
	}

	count := binary.LittleEndian.Uint16(buf[10:12])
	indexLen := uint64(binary.LittleEndian.Uint32(buf[12:16]))

	if err := utils.ValidateBufferSize(indexLen, utils.MaxIndexBytes, "cube index"); err != nil {
		return nil, err
	}
	if headerSize+int64(indexLen) > size {
		return nil, fmt.Errorf("cube index length %d beyond file size %d", indexLen, size)
	}

	indexBuf := make([]byte, indexLen)
	if _, err := r.ReadAt(indexBuf, headerSize); err != nil {
		return nil, utils.WrapError("index read failed", err)
	}

	var entries []cubeEntry
	if err := json.Unmarshal(indexBuf, &entries); err != nil {
		return nil, utils.WrapError("index decode failed", err)
	}
	if len(entries) != int(count) {
		return nil, fmt.Errorf("cube count mismatch: superblock says %d, index holds %d", count, len(entries))
	}

	cubes := make([]*Cube, len(entries))
	for i := range entries {
		c, err := readPayload(r, size, &entries[i])
		if err != nil {
			return nil, utils.WrapError(fmt.Sprintf("cube %q payload", entries[i].Name), err)
		}
		cubes[i] = c
	}

	return cubes, nil
}

func readPayload(r io.ReaderAt, size int64, e *cubeEntry) (*Cube, error) {
	want, err := utils.CalculateDataSize(e.Shape, 8)
	if err != nil {
		return nil, err
	}
	if want != e.DataLength {
		return nil, fmt.Errorf("payload length %d does not match shape %v (want %d)", e.DataLength, e.Shape, want)
	}
	if err := utils.ValidateBufferSize(e.DataLength, utils.MaxCubeBytes, "cube payload"); err != nil {
		return nil, err
	}
	//nolint:gosec // G115: file size is positive, safe to convert int64 to uint64
	if e.DataOffset+e.DataLength > uint64(size) {
		return nil, fmt.Errorf("payload at offset %d length %d beyond file size %d", e.DataOffset, e.DataLength, size)
	}

	raw := make([]byte, e.DataLength)
	//nolint:gosec // G115: offset validated against file size above
	if _, err := r.ReadAt(raw, int64(e.DataOffset)); err != nil {
		return nil, err
	}

	c := e.Cube
	c.Data = make([]float64, e.DataLength/8)
	for i := range c.Data {
		c.Data[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}

	return &c, nil
}
