// Package repo implements the on-disk repository: the .git directory
// layout, reference storage, the directory-object codec, the working-tree
// materializer, and the clone orchestrator that ties the transport and
// pack packages to the object store.
package repo

import "github.com/eklavyac/gogit/pkg/object"

// GitDirName is the name of the repository metadata directory, excluded
// from directory-object encoding.
const GitDirName = ".git"

// Repo is an opened repository: a working-tree root paired with the
// object store and ref files rooted at RootDir/.git. It carries no other
// mutable state; the active repository root is this value, threaded
// explicitly through every call rather than held as ambient global state.
type Repo struct {
	RootDir string        // working-tree root
	GitDir  string        // RootDir/.git
	Store   *object.Store // content-addressed object store rooted at GitDir
}
