// Package vfs implements the in-memory virtual file system backing one
// workspace. It is the single source of truth for project content: the agent
// layer writes files through it, and the bundler reads immutable snapshots
// from it.
package vfs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/codecanvas/studio/internal/types"
)

// ShellPath is the fixed entry document hosting the generated application.
// It is created when the file system is initialized and is immutable
// thereafter.
const ShellPath = "index.html"

var (
	// ErrReadOnly is returned for any write against the shell document.
	ErrReadOnly = errors.New("read-only violation: " + ShellPath + " is immutable")

	// ErrNotFound is returned when a path has no entry.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidPath is returned for paths that are not relative,
	// slash-separated, final-form strings.
	ErrInvalidPath = errors.New("invalid path")
)

// FS is a mapping from path to file record. All methods are safe for
// concurrent use; snapshots are atomic with respect to mutations.
type FS struct {
	mu    sync.RWMutex
	files map[string]types.ProjectFile
	rev   uint64
}

// Snapshot is an immutable copy of the file system at one revision.
type Snapshot struct {
	Files    map[string]types.ProjectFile
	Revision uint64
}

// New creates a file system seeded with the golden shell.
func New(shell string) *FS {
	fs := &FS{files: make(map[string]types.ProjectFile)}
	fs.files[ShellPath] = types.ProjectFile{
		Path:     ShellPath,
		Content:  shell,
		Language: types.LangHTML,
	}
	return fs
}

// Create upserts a file. Writes to the shell are rejected without mutating
// state. Language is derived from the path's extension.
func (f *FS) Create(path, content string) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if path == ShellPath {
		return ErrReadOnly
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.files[path] = types.ProjectFile{
		Path:     path,
		Content:  content,
		Language: LanguageForPath(path),
	}
	f.rev++
	return nil
}

// Read returns the file at path.
func (f *FS) Read(path string) (types.ProjectFile, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	file, ok := f.files[path]
	if !ok {
		return types.ProjectFile{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return file, nil
}

// Delete removes a file. The shell cannot be deleted.
func (f *FS) Delete(path string) error {
	if path == ShellPath {
		return ErrReadOnly
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.files[path]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	delete(f.files, path)
	f.rev++
	return nil
}

// List returns all paths, sorted.
func (f *FS) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	paths := make([]string, 0, len(f.files))
	for p := range f.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of files, shell included.
func (f *FS) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.files)
}

// Revision returns the current mutation counter.
func (f *FS) Revision() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.rev
}

// Snapshot returns a copy of all files tagged with the revision it was taken
// at. The copy is taken under one lock acquisition, so it never observes a
// partially applied mutation sequence.
func (f *FS) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	files := make(map[string]types.ProjectFile, len(f.files))
	for p, file := range f.files {
		files[p] = file
	}
	return Snapshot{Files: files, Revision: f.rev}
}

// Paths returns the snapshot's paths, sorted. Iterating in this order keeps
// everything derived from a snapshot deterministic.
func (s Snapshot) Paths() []string {
	paths := make([]string, 0, len(s.Files))
	for p := range s.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// validatePath enforces the path contract: relative, slash-separated, in
// final form. Producers must normalize before writing.
func validatePath(p string) error {
	if p == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if strings.HasPrefix(p, "/") {
		return fmt.Errorf("%w: %s: must be relative", ErrInvalidPath, p)
	}
	if strings.Contains(p, "\\") {
		return fmt.Errorf("%w: %s: must be slash-separated", ErrInvalidPath, p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %s: must be in final form", ErrInvalidPath, p)
		}
	}
	return nil
}
