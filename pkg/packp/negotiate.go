package packp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/eklavyac/gogit/pkg/object"
	"github.com/eklavyac/gogit/pkg/transport"
)

const uploadPackRequestContentType = "application/x-git-upload-pack-request"

// packMagic is the literal four bytes a pack stream starts with, used to
// locate the pack inside the negotiation response body.
var packMagic = []byte("PACK")

// Negotiate issues POST repoURL/git-upload-pack with a single unconditional
// "want", and returns the pack stream sliced out of the response body
// starting at the first occurrence of the literal bytes "PACK" (spec.md
// §4.9). Shallow clone and capability negotiation beyond one want are out
// of scope.
func Negotiate(client *transport.Client, repoURL string, want object.Hash) ([]byte, error) {
	var body bytes.Buffer
	body.Write(Frame([]byte(fmt.Sprintf("want %s\n", want))))
	body.Write(Flush())
	body.Write(Frame([]byte("done\n")))

	resp, err := client.Post(
		strings.TrimRight(repoURL, "/")+"/git-upload-pack",
		body.Bytes(),
		uploadPackRequestContentType,
	)
	if err != nil {
		return nil, err
	}

	idx := bytes.Index(resp, packMagic)
	if idx < 0 {
		return nil, fmt.Errorf("%w: no pack stream found in negotiation response", object.ErrCorruptStream)
	}
	return resp[idx:], nil
}
