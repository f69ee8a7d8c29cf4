package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eklavyac/gogit/pkg/object"
)

// defaultHead is the HEAD content written by Init.
const defaultHead = "ref: refs/heads/main\n"

// Init creates a new repository at path: RootDir/.git, its objects/ and
// refs/heads/ subdirectories, and a HEAD pointing at refs/heads/main.
// Fails if .git already exists.
func Init(path string) (*Repo, error) {
	gitDir := filepath.Join(path, GitDirName)

	if _, err := os.Stat(gitDir); err == nil {
		return nil, fmt.Errorf("%w: repository already exists at %s", object.ErrBadArguments, gitDir)
	}

	dirs := []string{
		filepath.Join(gitDir, "objects"),
		filepath.Join(gitDir, "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("%w: mkdir %s: %v", object.ErrFilesystemIO, d, err)
		}
	}

	if err := os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte(defaultHead), 0o644); err != nil {
		return nil, fmt.Errorf("%w: write HEAD: %v", object.ErrFilesystemIO, err)
	}

	return &Repo{RootDir: path, GitDir: gitDir, Store: object.NewStore(gitDir)}, nil
}

// Open searches upward from path for a .git directory and opens the
// repository rooted there.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %v", object.ErrFilesystemIO, path, err)
	}

	cur := abs
	for {
		gitDir := filepath.Join(cur, GitDirName)
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return &Repo{RootDir: cur, GitDir: gitDir, Store: object.NewStore(gitDir)}, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("%w: not a repository (or any parent up to /): %s", object.ErrBadArguments, path)
		}
		cur = parent
	}
}

// Head reads .git/HEAD. If it is a symbolic ref ("ref: <name>"), it returns
// the ref name; otherwise it returns the detached digest line.
func (r *Repo) Head() (string, error) {
	data, err := os.ReadFile(filepath.Join(r.GitDir, "HEAD"))
	if err != nil {
		return "", fmt.Errorf("%w: read HEAD: %v", object.ErrFilesystemIO, err)
	}
	content := strings.TrimRight(string(data), "\n")
	if strings.HasPrefix(content, "ref: ") {
		return strings.TrimPrefix(content, "ref: "), nil
	}
	return content, nil
}

// ResolveRef resolves "HEAD", a "refs/..." path, or a bare branch name to
// an object digest.
func (r *Repo) ResolveRef(name string) (object.Hash, error) {
	if name == "HEAD" {
		head, err := r.Head()
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(head, "refs/") {
			return r.ResolveRef(head)
		}
		return object.Hash(head), nil
	}

	refPath := filepath.Join(r.GitDir, "refs", "heads", name)
	if strings.HasPrefix(name, "refs/") {
		refPath = filepath.Join(r.GitDir, name)
	}

	data, err := os.ReadFile(refPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: ref %q", object.ErrMissing, name)
		}
		return "", fmt.Errorf("%w: read ref %q: %v", object.ErrFilesystemIO, name, err)
	}
	return object.Hash(strings.TrimRight(string(data), "\n")), nil
}

// UpdateRef writes a digest to the named ref file under .git, creating
// parent directories as needed. The store is single-threaded cooperative
// (spec.md §5): no locking is performed here.
func (r *Repo) UpdateRef(name string, h object.Hash) error {
	refPath := filepath.Join(r.GitDir, name)
	if err := os.MkdirAll(filepath.Dir(refPath), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir for ref %q: %v", object.ErrFilesystemIO, name, err)
	}
	if err := os.WriteFile(refPath, []byte(string(h)+"\n"), 0o644); err != nil {
		return fmt.Errorf("%w: write ref %q: %v", object.ErrFilesystemIO, name, err)
	}
	return nil
}

// SetHead points HEAD at a branch ref name, writing ref: <name>\n.
func (r *Repo) SetHead(refName string) error {
	return os.WriteFile(filepath.Join(r.GitDir, "HEAD"), []byte("ref: "+refName+"\n"), 0o644)
}

// SetHeadDetached points HEAD directly at a digest, bypassing any branch.
func (r *Repo) SetHeadDetached(h object.Hash) error {
	return os.WriteFile(filepath.Join(r.GitDir, "HEAD"), []byte(string(h)+"\n"), 0o644)
}
