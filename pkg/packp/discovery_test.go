package packp

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eklavyac/gogit/pkg/object"
	"github.com/eklavyac/gogit/pkg/transport"
)

const (
	testHeadDigest   = "1111111111111111111111111111111111111111"
	testMasterDigest = "2222222222222222222222222222222222222222"
)

func discoveryBody(lines ...string) []byte {
	var buf bytes.Buffer
	buf.Write(Frame([]byte("# service=git-upload-pack\n")))
	buf.Write(Flush())
	for _, l := range lines {
		buf.Write(Frame([]byte(l + "\n")))
	}
	buf.Write(Flush())
	return buf.Bytes()
}

func TestDiscoverPrefersHEAD(t *testing.T) {
	body := discoveryBody(
		testHeadDigest+" HEAD\x00multi_ack side-band-64k",
		testHeadDigest+" refs/heads/main",
		testMasterDigest+" refs/heads/other",
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	ref, err := Discover(transport.NewClient(), srv.URL)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if ref.Hash != object.Hash(testHeadDigest) {
		t.Errorf("Hash = %s, want %s", ref.Hash, testHeadDigest)
	}
	if ref.Name != "refs/heads/main" {
		t.Errorf("Name = %q, want refs/heads/main", ref.Name)
	}
}

func TestDiscoverFallsBackToMasterWithoutHEAD(t *testing.T) {
	body := discoveryBody(testMasterDigest + " refs/heads/master")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	ref, err := Discover(transport.NewClient(), srv.URL)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if ref.Hash != object.Hash(testMasterDigest) || ref.Name != "refs/heads/master" {
		t.Errorf("ref = %+v", ref)
	}
}

func TestDiscoverNoUsableRefReturnsMissing(t *testing.T) {
	body := discoveryBody(testMasterDigest + " refs/heads/feature")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	if _, err := Discover(transport.NewClient(), srv.URL); !errors.Is(err, object.ErrMissing) {
		t.Errorf("Discover = %v, want ErrMissing", err)
	}
}

func TestDiscoverHEADWithoutMatchingBranchHasEmptyName(t *testing.T) {
	body := discoveryBody(testHeadDigest + " HEAD\x00caps")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	ref, err := Discover(transport.NewClient(), srv.URL)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if ref.Name != "" {
		t.Errorf("Name = %q, want empty (detached fallback)", ref.Name)
	}
}
