package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/eklavyac/gogit/pkg/object"
)

// WriteTree encodes dirPath as a directory object, recursively: a regular
// file becomes a Blob at mode 100644, a subdirectory recurses at mode
// 40000. The entry named GitDirName is skipped (the repository's own
// metadata directory, only meaningful at the repository root, but skipped
// uniformly at every depth since no tracked tree may contain one). Other
// file kinds (symlinks, devices, sockets) are skipped (spec.md §4.4).
func (r *Repo) WriteTree(dirPath string) (object.Hash, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return "", fmt.Errorf("%w: read dir %s: %v", object.ErrFilesystemIO, dirPath, err)
	}

	names := make([]string, 0, len(entries))
	byName := make(map[string]os.DirEntry, len(entries))
	for _, e := range entries {
		if e.Name() == GitDirName {
			continue
		}
		names = append(names, e.Name())
		byName[e.Name()] = e
	}
	sort.Strings(names)

	var tree object.TreeObj
	for _, name := range names {
		e := byName[name]
		childPath := filepath.Join(dirPath, name)

		switch {
		case e.Type().IsRegular():
			data, err := os.ReadFile(childPath)
			if err != nil {
				return "", fmt.Errorf("%w: read file %s: %v", object.ErrFilesystemIO, childPath, err)
			}
			h, err := r.Store.WriteBlob(&object.Blob{Data: data})
			if err != nil {
				return "", fmt.Errorf("write blob %s: %w", childPath, err)
			}
			tree.Entries = append(tree.Entries, object.TreeEntry{Mode: object.TreeModeFile, Name: name, Hash: h})
		case e.IsDir():
			h, err := r.WriteTree(childPath)
			if err != nil {
				return "", err
			}
			tree.Entries = append(tree.Entries, object.TreeEntry{Mode: object.TreeModeDir, Name: name, Hash: h})
		default:
			// symlinks, devices, sockets: not representable, skipped
		}
	}

	return r.Store.WriteTree(&tree)
}

// Materialize recursively writes the tree at h into destDir: directories
// are created and recursed into, everything else is read as a Blob and
// written as a regular file (spec.md §4.5). Pre-existing files may be
// overwritten.
func (r *Repo) Materialize(h object.Hash, destDir string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", object.ErrFilesystemIO, destDir, err)
	}

	tree, err := r.Store.ReadTree(h)
	if err != nil {
		return fmt.Errorf("materialize %s: %w", h, err)
	}

	for _, entry := range tree.Entries {
		childPath := filepath.Join(destDir, entry.Name)
		if entry.IsDir() {
			if err := r.Materialize(entry.Hash, childPath); err != nil {
				return err
			}
			continue
		}

		blob, err := r.Store.ReadBlob(entry.Hash)
		if err != nil {
			return fmt.Errorf("materialize %s: %w", childPath, err)
		}
		if err := os.WriteFile(childPath, blob.Data, 0o644); err != nil {
			return fmt.Errorf("%w: write %s: %v", object.ErrFilesystemIO, childPath, err)
		}
	}
	return nil
}
