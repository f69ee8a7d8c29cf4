package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// rawLen is the length in bytes of a raw (binary) digest.
const rawLen = 20

// hexLen is the length in characters of a hex-encoded digest.
const hexLen = rawLen * 2

// HashBytes computes the raw SHA-1 digest of data and returns it hex-encoded.
func HashBytes(data []byte) Hash {
	sum := sha1.Sum(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashObject computes the digest of an object's framed form: the header
// "<type> <size>\0" followed by the payload.
func HashObject(objType ObjectType, data []byte) Hash {
	h := sha1.New()
	fmt.Fprintf(h, "%s %d\x00", objType, len(data))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// ToRaw decodes a 40-character hex Hash into its 20 raw bytes.
func ToRaw(h Hash) ([]byte, error) {
	return DecodeHex(string(h))
}

// DecodeHex validates and decodes a 40-character lowercase hex digest into
// 20 raw bytes. Anything else fails with ErrBadDigest.
func DecodeHex(s string) ([]byte, error) {
	if len(s) != hexLen {
		return nil, fmt.Errorf("%w: %q has length %d, want %d", ErrBadDigest, s, len(s), hexLen)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadDigest, s, err)
	}
	return raw, nil
}

// EncodeHex encodes 20 raw bytes as a 40-character lowercase hex Hash.
func EncodeHex(raw []byte) (Hash, error) {
	if len(raw) != rawLen {
		return "", fmt.Errorf("%w: raw digest has length %d, want %d", ErrBadDigest, len(raw), rawLen)
	}
	return Hash(hex.EncodeToString(raw)), nil
}

// ValidateHash checks that h is a well-formed 40-character lowercase hex
// digest without decoding it.
func ValidateHash(h Hash) error {
	_, err := DecodeHex(string(h))
	return err
}
