package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eklavyac/gogit/pkg/object"
	"github.com/eklavyac/gogit/pkg/packp"
	"github.com/eklavyac/gogit/pkg/transport"
)

// Clone performs a full clone of repoURL into dest (spec.md §4.12):
// create the destination layout, discover refs, negotiate and download the
// pack, resolve deltas, persist every object, set HEAD, and materialize
// the working tree from the cloned commit's tree.
func Clone(repoURL, dest string) (*Repo, error) {
	gitDir := filepath.Join(dest, GitDirName)
	dirs := []string{
		filepath.Join(gitDir, "objects"),
		filepath.Join(gitDir, "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("%w: mkdir %s: %v", object.ErrFilesystemIO, d, err)
		}
	}

	r := &Repo{RootDir: dest, GitDir: gitDir, Store: object.NewStore(gitDir)}

	client := transport.NewClient()

	ref, err := packp.Discover(client, repoURL)
	if err != nil {
		return nil, fmt.Errorf("clone %s: discover refs: %w", repoURL, err)
	}

	packData, err := packp.Negotiate(client, repoURL, ref.Hash)
	if err != nil {
		return nil, fmt.Errorf("clone %s: negotiate: %w", repoURL, err)
	}

	records, err := object.ParsePack(packData)
	if err != nil {
		return nil, fmt.Errorf("clone %s: parse pack: %w", repoURL, err)
	}
	resolved, err := object.ResolvePack(records)
	if err != nil {
		return nil, fmt.Errorf("clone %s: resolve pack: %w", repoURL, err)
	}
	for _, obj := range resolved {
		if err := r.Store.WriteRaw(obj.Hash, obj.Type, obj.Payload); err != nil {
			return nil, fmt.Errorf("clone %s: store object %s: %w", repoURL, obj.Hash, err)
		}
	}

	defaultBranch := ref.Name
	if defaultBranch != "" {
		if err := r.UpdateRef(defaultBranch, ref.Hash); err != nil {
			return nil, fmt.Errorf("clone %s: write ref: %w", repoURL, err)
		}
		if err := r.SetHead(defaultBranch); err != nil {
			return nil, fmt.Errorf("clone %s: set HEAD: %w", repoURL, err)
		}
	} else {
		if err := r.SetHeadDetached(ref.Hash); err != nil {
			return nil, fmt.Errorf("clone %s: set detached HEAD: %w", repoURL, err)
		}
	}

	commit, err := r.Store.ReadCommit(ref.Hash)
	if err != nil {
		return nil, fmt.Errorf("clone %s: read cloned commit %s: %w", repoURL, ref.Hash, err)
	}
	if err := r.Materialize(commit.TreeHash, dest); err != nil {
		return nil, fmt.Errorf("clone %s: materialize working tree: %w", repoURL, err)
	}

	_ = r.RecordRemote(repoURL, defaultBranch)

	return r, nil
}
