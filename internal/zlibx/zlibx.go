// Package zlibx is the compression adapter described in spec.md §4.1. It
// wraps klauspost/compress/zlib rather than the standard library's
// compress/zlib — a drop-in, API-compatible implementation already present
// in the dependency graph this module was grown from.
//
// This package is a leaf: it returns plain errors and has no dependency on
// pkg/object, so pkg/object (which imports zlibx) never imports back into
// it. Callers wrap these errors into the object error taxonomy themselves.
package zlibx

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Inflate decompresses a complete zlib stream and returns the inflated
// payload.
func Inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib header: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return out, nil
}

// Deflate compresses payload at maximum compression.
func Deflate(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(payload); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InflateAt starts a zlib stream at an arbitrary offset inside a larger
// buffer, returning the fully inflated payload and the number of input
// bytes consumed to reach the stream end. This is how the pack parser
// (spec.md §4.10) reads successive pack records sharing one contiguous
// buffer.
func InflateAt(buf []byte, offset int) (inflated []byte, consumed int, err error) {
	if offset < 0 || offset > len(buf) {
		return nil, 0, fmt.Errorf("inflate offset %d out of range [0,%d]", offset, len(buf))
	}

	cr := &countingReader{r: bytes.NewReader(buf[offset:])}
	zr, err := zlib.NewReader(cr)
	if err != nil {
		return nil, 0, fmt.Errorf("zlib header at offset %d: %w", offset, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("inflate at offset %d: %w", offset, err)
	}
	return out, cr.n, nil
}

// countingReader counts bytes read through it so the caller can recover how
// far a zlib.Reader advanced into a shared buffer. It implements
// io.ByteReader itself (rather than relying on flate's internal bufio
// wrapper, which would read ahead through Read and make n overshoot the
// true zlib stream length) so every byte flate consumes one at a time is
// counted exactly once.
type countingReader struct {
	r *bytes.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}
