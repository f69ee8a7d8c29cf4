package object

import (
	"bytes"
	"fmt"
	"io"
)

// decodeDeltaVarint reads the standard continuation-bit variable-length
// integer encoding (7 low bits per byte, shifts 0, 7, 14, ...) used for the
// source/target sizes at the head of a delta payload (spec.md §4.11). This
// is deliberately a different helper from decodeOfsDeltaDistance below —
// collapsing the two hides bugs (spec.md §9).
func decodeDeltaVarint(r io.ByteReader) (uint64, error) {
	var (
		value uint64
		shift uint
	)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, nil
		}
		shift += 7
		if shift > 63 {
			return 0, fmt.Errorf("%w: delta varint too large", ErrCorruptDelta)
		}
	}
}

// decodeOfsDeltaDistance decodes the ofs-delta backward-distance encoding
// (spec.md §4.10): n = b0 & 0x7f; while continuation: n = ((n+1)<<7) | (b & 0x7f).
func decodeOfsDeltaDistance(data []byte) (uint64, int, error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("%w: ofs-delta distance truncated", ErrCorruptPack)
	}
	i := 0
	c := data[i]
	i++
	offset := uint64(c & 0x7f)
	for c&0x80 != 0 {
		if i >= len(data) {
			return 0, 0, fmt.Errorf("%w: ofs-delta distance truncated", ErrCorruptPack)
		}
		c = data[i]
		i++
		offset = ((offset + 1) << 7) | uint64(c&0x7f)
	}
	return offset, i, nil
}

// applyDelta applies copy/insert delta instructions to base and returns the
// reconstructed target (spec.md §4.11).
func applyDelta(base, delta []byte) ([]byte, error) {
	dr := bytes.NewReader(delta)

	baseSize, err := decodeDeltaVarint(dr)
	if err != nil {
		return nil, fmt.Errorf("%w: read base size: %v", ErrCorruptDelta, err)
	}
	if int(baseSize) != len(base) {
		return nil, fmt.Errorf("%w: base size mismatch: got %d want %d", ErrCorruptDelta, baseSize, len(base))
	}
	resultSize, err := decodeDeltaVarint(dr)
	if err != nil {
		return nil, fmt.Errorf("%w: read result size: %v", ErrCorruptDelta, err)
	}

	out := make([]byte, 0, resultSize)
	for dr.Len() > 0 {
		cmd, err := dr.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptDelta, err)
		}

		if cmd&0x80 != 0 {
			offset, err := readDeltaCopyArg(dr, cmd, 0)
			if err != nil {
				return nil, err
			}
			size, err := readDeltaCopyArg(dr, cmd, 4)
			if err != nil {
				return nil, err
			}
			if size == 0 {
				size = 0x10000
			}
			if offset+size > int64(len(base)) {
				return nil, fmt.Errorf("%w: copy instruction out of bounds", ErrCorruptDelta)
			}
			out = append(out, base[offset:offset+size]...)
			continue
		}

		if cmd == 0 {
			return nil, fmt.Errorf("%w: reserved delta command 0", ErrCorruptDelta)
		}
		insert := make([]byte, int(cmd))
		if _, err := io.ReadFull(dr, insert); err != nil {
			return nil, fmt.Errorf("%w: insert instruction: %v", ErrCorruptDelta, err)
		}
		out = append(out, insert...)
	}

	if uint64(len(out)) != resultSize {
		return nil, fmt.Errorf("%w: result size mismatch: got %d expected %d", ErrCorruptDelta, len(out), resultSize)
	}
	return out, nil
}

// readDeltaCopyArg reads the variable-width little-endian argument (offset
// at bitOffset 0, size at bitOffset 4) selected by a copy instruction's
// present-byte bits in cmd: bit (bitOffset+i) set means byte i is present on
// the wire (spec.md §4.11's COPY instruction layout).
func readDeltaCopyArg(r io.ByteReader, cmd byte, bitOffset uint) (int64, error) {
	width := 4
	if bitOffset == 4 {
		width = 3 // the size field only ever carries 3 present-bytes
	}
	var val int64
	for i := 0; i < width; i++ {
		if cmd&(byte(1)<<(bitOffset+uint(i))) == 0 {
			continue
		}
		b, err := readDeltaCopyArgByte(r)
		if err != nil {
			return 0, err
		}
		val |= int64(b) << (8 * uint(i))
	}
	return val, nil
}

func readDeltaCopyArgByte(r io.ByteReader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: copy instruction argument: %v", ErrCorruptDelta, err)
	}
	return b, nil
}
