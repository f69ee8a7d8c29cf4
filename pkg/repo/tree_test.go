package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTreeAndReadTreeOrdering(t *testing.T) {
	// spec.md E3: a directory with b.txt and a.txt encodes with entries
	// sorted lexically (a.txt before b.txt).
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("B"), 0o644); err != nil {
		t.Fatalf("write b.txt: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("A"), 0o644); err != nil {
		t.Fatalf("write a.txt: %v", err)
	}

	treeHash, err := r.WriteTree(dir)
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	tree, err := r.Store.ReadTree(treeHash)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if len(tree.Entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(tree.Entries), tree.Entries)
	}
	if tree.Entries[0].Name != "a.txt" || tree.Entries[1].Name != "b.txt" {
		t.Errorf("entry order = %q, %q; want a.txt, b.txt", tree.Entries[0].Name, tree.Entries[1].Name)
	}
}

func TestWriteTreeSkipsGitDir(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("data"), 0o644); err != nil {
		t.Fatalf("write f.txt: %v", err)
	}

	treeHash, err := r.WriteTree(dir)
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	tree, err := r.Store.ReadTree(treeHash)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if len(tree.Entries) != 1 || tree.Entries[0].Name != "f.txt" {
		t.Errorf("tree should contain only f.txt, got %+v", tree.Entries)
	}
}

func TestWriteTreeRecursesIntoSubdirectories(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "nested.txt"), []byte("n"), 0o644); err != nil {
		t.Fatalf("write nested.txt: %v", err)
	}

	treeHash, err := r.WriteTree(dir)
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	tree, err := r.Store.ReadTree(treeHash)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if len(tree.Entries) != 1 || !tree.Entries[0].IsDir() {
		t.Fatalf("expected a single directory entry, got %+v", tree.Entries)
	}

	subTree, err := r.Store.ReadTree(tree.Entries[0].Hash)
	if err != nil {
		t.Fatalf("ReadTree(sub): %v", err)
	}
	if len(subTree.Entries) != 1 || subTree.Entries[0].Name != "nested.txt" {
		t.Errorf("sub tree = %+v", subTree.Entries)
	}
}

func TestWriteTreeMaterializeRoundTrip(t *testing.T) {
	src := t.TempDir()
	r, err := Init(src)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("A"), 0o644); err != nil {
		t.Fatalf("write a.txt: %v", err)
	}
	sub := filepath.Join(src, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b.txt"), []byte("B"), 0o644); err != nil {
		t.Fatalf("write b.txt: %v", err)
	}

	treeHash, err := r.WriteTree(src)
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}

	dest := t.TempDir()
	if err := r.Materialize(treeHash, dest); err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	if err != nil || string(got) != "A" {
		t.Errorf("a.txt = %q, %v", got, err)
	}
	got, err = os.ReadFile(filepath.Join(dest, "sub", "b.txt"))
	if err != nil || string(got) != "B" {
		t.Errorf("sub/b.txt = %q, %v", got, err)
	}
}
