package object

import (
	"fmt"

	"github.com/eklavyac/gogit/internal/zlibx"
)

// packChecksumSize is the length of the trailing pack checksum. spec.md
// §4.10 explicitly leaves it unvalidated; it is only used to know where
// record parsing must stop.
const packChecksumSize = 20

// PackRecord is one transient record inside a parsed pack stream (spec.md
// §3, "Pack object (transient)"). Records live only until delta resolution
// replaces them with real objects.
type PackRecord struct {
	Kind   PackObjectType
	Offset uint64 // absolute offset of this record's header inside the pack
	Data   []byte // inflated payload; for delta kinds, delta instructions

	IsDelta    bool
	BaseOffset uint64 // ofs-delta: absolute offset of the base record
	BaseHash   Hash   // ref-delta: digest of the base object
}

// ParsePack parses a complete pack stream: the 12-byte header, NumObjects
// records, and a trailing checksum that is skipped rather than verified.
func ParsePack(data []byte) ([]PackRecord, error) {
	if len(data) < packHeaderSize+packChecksumSize {
		return nil, fmt.Errorf("%w: pack too short: %d bytes", ErrCorruptPack, len(data))
	}

	header, err := UnmarshalPackHeader(data[:packHeaderSize])
	if err != nil {
		return nil, err
	}

	payloadEnd := len(data) - packChecksumSize
	offset := packHeaderSize
	records := make([]PackRecord, 0, header.NumObjects)

	for i := uint32(0); i < header.NumObjects; i++ {
		if offset >= payloadEnd {
			return nil, fmt.Errorf("%w: record %d: missing header", ErrCorruptPack, i)
		}
		recordStart := offset

		kind, size, n, err := decodePackEntryHeader(data[offset:payloadEnd])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		offset += n

		rec := PackRecord{Kind: kind, Offset: uint64(recordStart)}

		switch kind {
		case PackOfsDelta:
			distance, n, err := decodeOfsDeltaDistance(data[offset:payloadEnd])
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			if distance == 0 || distance > uint64(recordStart) {
				return nil, fmt.Errorf("%w: record %d: ofs-delta base offset out of range", ErrCorruptPack, i)
			}
			rec.IsDelta = true
			rec.BaseOffset = uint64(recordStart) - distance
			offset += n
		case PackRefDelta:
			if offset+rawLen > payloadEnd {
				return nil, fmt.Errorf("%w: record %d: ref-delta base digest truncated", ErrCorruptPack, i)
			}
			baseHash, err := EncodeHex(data[offset : offset+rawLen])
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			rec.IsDelta = true
			rec.BaseHash = baseHash
			offset += rawLen
		case PackCommit, PackTree, PackBlob, PackTag:
			// base kinds carry no further header fields
		default:
			return nil, fmt.Errorf("%w: record %d: unsupported pack object type %d", ErrCorruptPack, i, kind)
		}

		inflated, consumed, err := zlibx.InflateAt(data[:payloadEnd], offset)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorruptStream, i, err)
		}
		if !rec.IsDelta && uint64(len(inflated)) != size {
			return nil, fmt.Errorf("%w: record %d: size mismatch header=%d decoded=%d", ErrCorruptPack, i, size, len(inflated))
		}
		rec.Data = inflated
		offset += consumed

		records = append(records, rec)
	}

	if offset != payloadEnd {
		return nil, fmt.Errorf("%w: %d trailing undecoded bytes before checksum", ErrCorruptPack, payloadEnd-offset)
	}

	return records, nil
}
