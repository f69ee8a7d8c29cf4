// Package packp implements the Smart-HTTP packet-line subset used by
// clone: packet-line framing, reference discovery, and want/done
// negotiation (spec.md §§4.6, 4.8, 4.9).
package packp

import (
	"fmt"

	"github.com/eklavyac/gogit/pkg/object"
)

const (
	pktLineHeaderLen = 4
	flushLine        = "0000"
)

// Frame encodes payload as a packet-line: four lowercase-hex length bytes
// (counting the header itself) followed by payload.
func Frame(payload []byte) []byte {
	length := pktLineHeaderLen + len(payload)
	out := make([]byte, 0, length)
	out = append(out, []byte(fmt.Sprintf("%04x", length))...)
	out = append(out, payload...)
	return out
}

// Flush is the four-byte flush packet.
func Flush() []byte {
	return []byte(flushLine)
}

// Parse walks buf and returns the payload of every non-flush packet-line,
// with a single trailing newline stripped. Values 0001-0003 are reserved
// and rejected with ErrCorruptStream.
func Parse(buf []byte) ([][]byte, error) {
	var lines [][]byte
	for len(buf) > 0 {
		if len(buf) < pktLineHeaderLen {
			return nil, fmt.Errorf("%w: packet-line header truncated", object.ErrCorruptStream)
		}
		var length int
		if _, err := fmt.Sscanf(string(buf[:pktLineHeaderLen]), "%04x", &length); err != nil {
			return nil, fmt.Errorf("%w: invalid packet-line length %q: %v", object.ErrCorruptStream, buf[:pktLineHeaderLen], err)
		}

		switch {
		case length == 0:
			buf = buf[pktLineHeaderLen:]
			continue
		case length < pktLineHeaderLen:
			return nil, fmt.Errorf("%w: reserved packet-line length %d", object.ErrCorruptStream, length)
		}

		if len(buf) < length {
			return nil, fmt.Errorf("%w: packet-line payload truncated", object.ErrCorruptStream)
		}
		payload := buf[pktLineHeaderLen:length]
		if len(payload) > 0 && payload[len(payload)-1] == '\n' {
			payload = payload[:len(payload)-1]
		}
		lines = append(lines, payload)
		buf = buf[length:]
	}
	return lines, nil
}
