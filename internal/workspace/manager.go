// Package workspace orchestrates live editing sessions. Each workspace owns
// one virtual file system and a monotonically increasing build sequence used
// to publish previews in last-submitted-wins order.
package workspace

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/codecanvas/studio/internal/bundler"
	"github.com/codecanvas/studio/internal/types"
	"github.com/codecanvas/studio/internal/vfs"
)

// Workspace is one live editing session.
type Workspace struct {
	ID        string
	Name      string
	Template  string
	CreatedAt time.Time
	FS        *vfs.FS

	// buildMu couples the snapshot read with the sequence claim so Seq
	// order always matches snapshot order.
	buildMu  sync.Mutex
	buildSeq uint64
}

// BuildResult couples a rendered document with the sequence number it was
// submitted under and the snapshot revision it was built from. Consumers
// must drop results whose Seq is lower than one they already rendered.
type BuildResult struct {
	Seq      uint64 `json:"seq"`
	Revision uint64 `json:"revision"`
	HTML     string `json:"html"`
}

// Build takes an atomic snapshot of the file system and renders the preview
// document. The snapshot and the sequence number are claimed in one critical
// section: a result with a higher Seq was built from content at least as new,
// so last-submitted-wins delivery never resurrects stale content. Rendering
// happens outside the lock.
func (w *Workspace) Build() BuildResult {
	w.buildMu.Lock()
	snap := w.FS.Snapshot()
	seq := atomic.AddUint64(&w.buildSeq, 1)
	w.buildMu.Unlock()

	return BuildResult{
		Seq:      seq,
		Revision: snap.Revision,
		HTML:     bundler.BuildPreview(snap),
	}
}

// Builds returns how many builds this workspace has submitted.
func (w *Workspace) Builds() uint64 {
	return atomic.LoadUint64(&w.buildSeq)
}

// Describe returns the serializable view of the workspace.
func (w *Workspace) Describe() types.Workspace {
	return types.Workspace{
		ID:        w.ID,
		Name:      w.Name,
		Template:  w.Template,
		CreatedAt: w.CreatedAt,
		FileCount: w.FS.Len(),
	}
}

// Manager tracks all live workspaces.
type Manager struct {
	workspaces sync.Map
}

// NewManager creates a new workspace manager.
func NewManager() *Manager {
	return &Manager{}
}

// Create spawns a workspace seeded with the golden shell.
func (m *Manager) Create(name string) *Workspace {
	if name == "" {
		name = "Untitled"
	}

	w := &Workspace{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
		FS:        vfs.New(bundler.GoldenShell),
	}
	m.workspaces.Store(w.ID, w)
	return w
}

// Get retrieves a workspace by ID.
func (m *Manager) Get(id string) (*Workspace, bool) {
	val, ok := m.workspaces.Load(id)
	if !ok {
		return nil, false
	}
	return val.(*Workspace), true
}

// List returns all workspaces, newest first.
func (m *Manager) List() []types.Workspace {
	var all []*Workspace
	m.workspaces.Range(func(_, value interface{}) bool {
		all = append(all, value.(*Workspace))
		return true
	})

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	out := make([]types.Workspace, 0, len(all))
	for _, w := range all {
		out = append(out, w.Describe())
	}
	return out
}

// Close destroys a workspace.
func (m *Manager) Close(id string) bool {
	_, ok := m.workspaces.LoadAndDelete(id)
	return ok
}

// Stats returns manager statistics.
func (m *Manager) Stats() types.Stats {
	var stats types.Stats
	m.workspaces.Range(func(_, value interface{}) bool {
		w := value.(*Workspace)
		stats.TotalWorkspaces++
		stats.TotalFiles += w.FS.Len()
		stats.TotalBuilds += w.Builds()
		return true
	})
	return stats
}
