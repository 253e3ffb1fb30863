// SPDX-License-Identifier: MIT

package matrix

import (
	"encoding/binary"
	"fmt"
	"math"
)

// bytesPerCell is the width of one float64 cell in a binary blob.
const bytesPerCell = 8

// Encode serializes m as a flat little-endian float64 blob in row-major
// order. The shape is not embedded: the paired registry carries it.
// Complexity: O(r*c).
func Encode(m *Dense) []byte {
	buf := make([]byte, len(m.data)*bytesPerCell)
	for k, v := range m.data {
		binary.LittleEndian.PutUint64(buf[k*bytesPerCell:], math.Float64bits(v))
	}

	return buf
}

// Decode rebuilds a rows×cols Dense from a blob produced by Encode.
// Errors: ErrInvalidDimensions, ErrCorruptBlob (length mismatch), ErrNaNInf.
// Complexity: O(r*c).
func Decode(rows, cols int, blob []byte, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(blob) != rows*cols*bytesPerCell {
		return nil, fmt.Errorf("Decode: want %d bytes for %dx%d, got %d: %w",
			rows*cols*bytesPerCell, rows, cols, len(blob), ErrCorruptBlob)
	}
	data := make([]float64, rows*cols)
	for k := range data {
		data[k] = math.Float64frombits(binary.LittleEndian.Uint64(blob[k*bytesPerCell:]))
	}

	return NewDenseFrom(rows, cols, data, opts...)
}
