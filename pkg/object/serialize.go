package object

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// TreeObj
// ---------------------------------------------------------------------------

// sortKey returns the byte string a tree entry is ordered by: directories
// compare as if their name carried a trailing "/" (spec.md §3), so that a
// directory "foo" sorts after a file "foo.txt" but before "foo/anything".
func sortKey(e TreeEntry) string {
	if e.IsDir() {
		return e.Name + "/"
	}
	return e.Name
}

// MarshalTree serializes a TreeObj to its binary form: repeated entries of
// "<ascii-octal-mode> SP <name> NUL <20-raw-digest>", sorted by sortKey.
func MarshalTree(t *TreeObj) []byte {
	sorted := make([]TreeEntry, len(t.Entries))
	copy(sorted, t.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sortKey(sorted[i]) < sortKey(sorted[j])
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		buf.WriteString(e.Mode)
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		raw, _ := ToRaw(e.Hash) // e.Hash was validated when the tree was built
		buf.Write(raw)
	}
	return buf.Bytes()
}

// UnmarshalTree parses a TreeObj from its binary form. A trailing partial
// entry (truncated mode, name, or digest) is ErrCorruptTree.
func UnmarshalTree(data []byte) (*TreeObj, error) {
	t := &TreeObj{}
	for len(data) > 0 {
		sp := bytes.IndexByte(data, ' ')
		if sp < 0 {
			return nil, fmt.Errorf("%w: missing mode separator", ErrCorruptTree)
		}
		mode := string(data[:sp])
		rest := data[sp+1:]

		nul := bytes.IndexByte(rest, 0)
		if nul < 0 {
			return nil, fmt.Errorf("%w: missing name terminator", ErrCorruptTree)
		}
		name := string(rest[:nul])
		rest = rest[nul+1:]

		if len(rest) < rawLen {
			return nil, fmt.Errorf("%w: truncated entry digest", ErrCorruptTree)
		}
		h, err := EncodeHex(rest[:rawLen])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptTree, err)
		}

		t.Entries = append(t.Entries, TreeEntry{Mode: mode, Name: name, Hash: h})
		data = rest[rawLen:]
	}
	return t, nil
}

// ---------------------------------------------------------------------------
// CommitObj
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitObj to the canonical text form:
//
//	tree <hex>
//	parent <hex>   (zero or more)
//	author <string>
//	committer <string>
//
//	<message>
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.TreeHash)
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	fmt.Fprintf(&buf, "author %s\n", c.Author)
	fmt.Fprintf(&buf, "committer %s\n", c.Committer)
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a CommitObj from its canonical text form.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("%w: missing header/message separator", ErrCorruptObject)
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	c := &CommitObj{Message: message}
	if header == "" {
		return nil, fmt.Errorf("%w: missing tree line", ErrCorruptObject)
	}
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("%w: malformed header line %q", ErrCorruptObject, line)
		}
		switch key {
		case "tree":
			c.TreeHash = Hash(val)
		case "parent":
			c.Parents = append(c.Parents, Hash(val))
		case "author":
			c.Author = val
		case "committer":
			c.Committer = val
		default:
			return nil, fmt.Errorf("%w: unknown header key %q", ErrCorruptObject, key)
		}
	}
	if c.TreeHash == "" {
		return nil, fmt.Errorf("%w: missing tree line", ErrCorruptObject)
	}
	return c, nil
}
