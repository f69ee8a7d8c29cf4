package object

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eklavyac/gogit/internal/zlibx"
)

// Store is a content-addressed loose-object store with a 2-character
// fan-out directory layout: objects/ab/cdef0123... (spec.md §4.3). It is
// single-threaded: callers are expected not to call into one Store
// concurrently, so no locking is performed.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory. The objects/
// subdirectory is created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

func frame(objType ObjectType, data []byte) []byte {
	envelope := fmt.Sprintf("%s %d\x00", objType, len(data))
	return append([]byte(envelope), data...)
}

// writeFramed deflates framed and atomically writes it under h, skipping
// the write entirely if an object is already stored at that path. Content
// addressing makes this both a correctness shortcut and the way a
// partially-written object from a previous crash is tolerated: the digest
// itself is the only thing ever trusted on read.
func (s *Store) writeFramed(h Hash, framed []byte) error {
	if s.Has(h) {
		return nil
	}

	compressed, err := zlibx.Deflate(framed)
	if err != nil {
		return fmt.Errorf("%w: deflate %s: %v", ErrFilesystemIO, h, err)
	}

	dir := filepath.Join(s.root, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrFilesystemIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrFilesystemIO, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrFilesystemIO, h, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %v", ErrFilesystemIO, err)
	}

	// Another write may have raced us to the same digest between the Has
	// check above and here; since the content is identical by definition,
	// losing that race is harmless and Rename simply overwrites it.
	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename into place %s: %v", ErrFilesystemIO, h, err)
	}
	return nil
}

// Write computes the content digest of objType/data, stores the framed,
// deflated object if not already present, and returns the digest. Writes
// are idempotent: writing the same (type, data) pair twice is a no-op the
// second time.
func (s *Store) Write(objType ObjectType, data []byte) (Hash, error) {
	h := HashObject(objType, data)
	if err := s.writeFramed(h, frame(objType, data)); err != nil {
		return "", err
	}
	return h, nil
}

// WriteRaw frames objType/data and stores it under the already-known digest
// h (as produced by pack delta resolution), bypassing re-hashing. It is
// silently a no-op if an object already exists at h, matching Write's
// idempotence (spec.md §4.3, used by clone's pack-unpacking step).
func (s *Store) WriteRaw(h Hash, objType ObjectType, data []byte) error {
	return s.writeFramed(h, frame(objType, data))
}

// Read retrieves an object by digest, returning its type and raw payload.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	compressed, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("%w: %s", ErrMissing, h)
		}
		return "", nil, fmt.Errorf("%w: read %s: %v", ErrFilesystemIO, h, err)
	}

	raw, err := zlibx.Inflate(compressed)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrCorruptObject, h, err)
	}

	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("%w: %s: missing NUL framing separator", ErrCorruptObject, h)
	}
	header := string(raw[:nulIdx])
	content := raw[nulIdx+1:]

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("%w: %s: malformed header %q", ErrCorruptObject, h, header)
	}
	objType := ObjectType(parts[0])
	length, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: malformed length %q", ErrCorruptObject, h, parts[1])
	}
	if len(content) != length {
		return "", nil, fmt.Errorf("%w: %s: length mismatch header=%d actual=%d", ErrCorruptObject, h, length, len(content))
	}

	return objType, content, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, b.Data)
}

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeBlob {
		return nil, fmt.Errorf("%w: %s: expected blob, got %q", ErrCorruptObject, h, objType)
	}
	return &Blob{Data: data}, nil
}

// WriteTree serializes and stores a TreeObj.
func (s *Store) WriteTree(t *TreeObj) (Hash, error) {
	return s.Write(TypeTree, MarshalTree(t))
}

// ReadTree reads and deserializes a TreeObj.
func (s *Store) ReadTree(h Hash) (*TreeObj, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeTree {
		return nil, fmt.Errorf("%w: %s: expected tree, got %q", ErrCorruptObject, h, objType)
	}
	return UnmarshalTree(data)
}

// WriteCommit serializes and stores a CommitObj.
func (s *Store) WriteCommit(c *CommitObj) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c))
}

// ReadCommit reads and deserializes a CommitObj.
func (s *Store) ReadCommit(h Hash) (*CommitObj, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeCommit {
		return nil, fmt.Errorf("%w: %s: expected commit, got %q", ErrCorruptObject, h, objType)
	}
	return UnmarshalCommit(data)
}
