package templates

import (
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/codecanvas/studio/internal/logging"
	"github.com/codecanvas/studio/internal/workspace"
)

// Registry holds loaded starter templates.
type Registry struct {
	templates sync.Map
	logger    *logging.Logger
}

// NewRegistry creates an empty template registry seeded with the built-in
// starters.
func NewRegistry(logger *logging.Logger) *Registry {
	r := &Registry{logger: logger}
	for _, m := range builtins() {
		r.templates.Store(m.ID, m)
	}
	return r
}

// LoadDir walks dir for *.template.yaml manifests and registers each one.
// A missing directory is not an error; the built-ins remain available.
func (r *Registry) LoadDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		r.logger.Info("template directory not found, using built-ins only", zap.String("dir", dir))
		return nil
	}

	var loaded, failed int
	err := fastwalk.Walk(&fastwalk.Config{Follow: false}, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".template.yaml") {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			failed++
			r.logger.Warn("failed to read template", zap.String("path", path), zap.Error(err))
			return nil
		}

		m, err := Parse(data)
		if err != nil {
			failed++
			r.logger.Warn("failed to parse template", zap.String("path", path), zap.Error(err))
			return nil
		}

		r.templates.Store(m.ID, m)
		loaded++
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("templates loaded", zap.Int("loaded", loaded), zap.Int("failed", failed))
	return nil
}

// Get retrieves a template by ID.
func (r *Registry) Get(id string) (*Manifest, bool) {
	val, ok := r.templates.Load(id)
	if !ok {
		return nil, false
	}
	return val.(*Manifest), true
}

// List returns all templates sorted by ID.
func (r *Registry) List() []*Manifest {
	var all []*Manifest
	r.templates.Range(func(_, value interface{}) bool {
		all = append(all, value.(*Manifest))
		return true
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// Apply writes a template's files into a workspace. The golden shell is
// never part of a template, so every write goes through the normal VFS path.
func (r *Registry) Apply(id string, w *workspace.Workspace) error {
	m, ok := r.Get(id)
	if !ok {
		return os.ErrNotExist
	}

	for _, f := range m.Files {
		if err := w.FS.Create(f.Path, f.Content); err != nil {
			return err
		}
	}
	w.Template = m.ID
	return nil
}
