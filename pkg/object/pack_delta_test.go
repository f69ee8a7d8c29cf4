package object

import (
	"bytes"
	"errors"
	"testing"
)

// buildDelta assembles a delta payload from varint-encoded sizes and a list
// of pre-encoded instruction bytes, mirroring the on-wire format decoded by
// applyDelta.
func buildDelta(t *testing.T, srcSize, dstSize int, instrs ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(encodeStandardVarint(uint64(srcSize)))
	buf.Write(encodeStandardVarint(uint64(dstSize)))
	for _, i := range instrs {
		buf.Write(i)
	}
	return buf.Bytes()
}

// encodeStandardVarint is a test-only mirror of decodeDeltaVarint's
// encoding, used to build delta fixtures without a production encoder
// (packfile writing is out of scope for this core).
func encodeStandardVarint(n uint64) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if n == 0 {
			break
		}
	}
	return out
}

func TestApplyDeltaCopyAndInsert(t *testing.T) {
	// spec.md E4: copy 5 bytes at offset 0, insert " Git", copy 6 bytes at
	// offset 5, applied to "Hello World" yields "Hello Git World".
	base := []byte("Hello World")

	copy1 := []byte{0x80 | 0x01 | 0x10, 0x00, 0x05} // offset byte0=0, size byte0=5
	insert := append([]byte{4}, []byte(" Git")...)
	copy2 := []byte{0x80 | 0x01 | 0x10, 0x05, 0x06} // offset byte0=5, size byte0=6

	delta := buildDelta(t, len(base), len("Hello Git World"), copy1, insert, copy2)

	got, err := applyDelta(base, delta)
	if err != nil {
		t.Fatalf("applyDelta: %v", err)
	}
	if string(got) != "Hello Git World" {
		t.Errorf("applyDelta = %q, want %q", got, "Hello Git World")
	}

	wantDigest := HashObject(TypeBlob, []byte("Hello Git World"))
	gotDigest := HashObject(TypeBlob, got)
	if gotDigest != wantDigest {
		t.Errorf("digest mismatch: got %s want %s", gotDigest, wantDigest)
	}
}

func TestApplyDeltaBaseSizeMismatch(t *testing.T) {
	delta := buildDelta(t, 100, 0)
	if _, err := applyDelta([]byte("short"), delta); !errors.Is(err, ErrCorruptDelta) {
		t.Errorf("applyDelta with wrong base size = %v, want ErrCorruptDelta", err)
	}
}

func TestApplyDeltaRejectsCmdZero(t *testing.T) {
	delta := buildDelta(t, 0, 0, []byte{0x00})
	if _, err := applyDelta(nil, delta); !errors.Is(err, ErrCorruptDelta) {
		t.Errorf("applyDelta with cmd=0 = %v, want ErrCorruptDelta", err)
	}
}

func TestDecodeOfsDeltaDistanceSingleByte(t *testing.T) {
	n, consumed, err := decodeOfsDeltaDistance([]byte{0x05})
	if err != nil {
		t.Fatalf("decodeOfsDeltaDistance: %v", err)
	}
	if n != 5 || consumed != 1 {
		t.Errorf("got (n=%d, consumed=%d), want (5, 1)", n, consumed)
	}
}

func TestDecodeOfsDeltaDistanceMultiByte(t *testing.T) {
	// 0x81 then 0x00: n = 1; continuation; n = ((1+1)<<7)|0 = 256
	n, consumed, err := decodeOfsDeltaDistance([]byte{0x81, 0x00})
	if err != nil {
		t.Fatalf("decodeOfsDeltaDistance: %v", err)
	}
	if n != 256 || consumed != 2 {
		t.Errorf("got (n=%d, consumed=%d), want (256, 2)", n, consumed)
	}
}
