package packp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/eklavyac/gogit/pkg/object"
	"github.com/eklavyac/gogit/pkg/transport"
)

// preferredBranches is the fallback order used when discovery offers no
// explicit HEAD digest (spec.md §9 open question (b): this core prefers
// master/main over parsing the server's symref=HEAD:... capability).
var preferredBranches = []string{"refs/heads/master", "refs/heads/main"}

// Ref is one (digest, name) pair offered by reference discovery.
type Ref struct {
	Hash object.Hash
	Name string
}

// Discover issues GET repoURL/info/refs?service=git-upload-pack, parses the
// advertised refs, and returns the chosen (digest, refName) pair: the HEAD
// entry if present, otherwise refs/heads/master or refs/heads/main.
func Discover(client *transport.Client, repoURL string) (Ref, error) {
	body, err := client.Get(strings.TrimRight(repoURL, "/") + "/info/refs?service=git-upload-pack")
	if err != nil {
		return Ref{}, err
	}

	lines, err := Parse(body)
	if err != nil {
		return Ref{}, err
	}
	if len(lines) > 0 && bytes.HasPrefix(lines[0], []byte("# service=")) {
		lines = lines[1:]
	}

	refs := make(map[string]object.Hash)
	for _, line := range lines {
		nul := bytes.IndexByte(line, 0)
		if nul >= 0 {
			line = line[:nul] // strip server capability list, present on the first ref line
		}
		sp := bytes.IndexByte(line, ' ')
		if sp < 0 {
			return Ref{}, fmt.Errorf("%w: malformed ref advertisement line %q", object.ErrCorruptStream, line)
		}
		digest := object.Hash(line[:sp])
		name := string(line[sp+1:])
		if err := object.ValidateHash(digest); err != nil {
			return Ref{}, fmt.Errorf("%w: ref %q: %v", object.ErrCorruptStream, name, err)
		}
		refs[name] = digest
	}

	if h, ok := refs["HEAD"]; ok {
		return Ref{Hash: h, Name: pickSymbolicTarget(refs)}, nil
	}
	for _, name := range preferredBranches {
		if h, ok := refs[name]; ok {
			return Ref{Hash: h, Name: name}, nil
		}
	}
	return Ref{}, fmt.Errorf("%w: no HEAD or master/main ref advertised", object.ErrMissing)
}

// pickSymbolicTarget chooses which branch name HEAD should be reported
// under locally, preferring master/main if the server also advertises one
// at the identical digest as HEAD; otherwise it returns "", and clone then
// writes a detached HEAD.
func pickSymbolicTarget(refs map[string]object.Hash) string {
	head := refs["HEAD"]
	for _, name := range preferredBranches {
		if h, ok := refs[name]; ok && h == head {
			return name
		}
	}
	return ""
}
