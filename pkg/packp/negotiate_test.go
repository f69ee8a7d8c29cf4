package packp

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eklavyac/gogit/pkg/object"
	"github.com/eklavyac/gogit/pkg/transport"
)

func TestNegotiateExtractsPackFromResponse(t *testing.T) {
	const want = testHeadDigest
	var gotBody []byte

	packBytes := append([]byte("PACK"), []byte{0, 0, 0, 2, 0, 0, 0, 0}...)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		// a sideband-less server prefixes the pack with a NAK line, as a
		// real git-upload-pack response does.
		w.Write(append(Frame([]byte("NAK\n")), packBytes...))
	}))
	defer srv.Close()

	got, err := Negotiate(transport.NewClient(), srv.URL, object.Hash(want))
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if !bytes.Equal(got, packBytes) {
		t.Errorf("Negotiate result = %x, want %x", got, packBytes)
	}
	if !bytes.Contains(gotBody, []byte("want "+want)) {
		t.Errorf("request body = %q, missing want line", gotBody)
	}
	if !bytes.Contains(gotBody, []byte("done\n")) {
		t.Errorf("request body = %q, missing done line", gotBody)
	}
}

func TestNegotiateRejectsResponseWithoutPack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(Frame([]byte("NAK\n")))
	}))
	defer srv.Close()

	_, err := Negotiate(transport.NewClient(), srv.URL, object.Hash(testHeadDigest))
	if !errors.Is(err, object.ErrCorruptStream) {
		t.Errorf("Negotiate(no pack) = %v, want ErrCorruptStream", err)
	}
}
