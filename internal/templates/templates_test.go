package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecanvas/studio/internal/logging"
	"github.com/codecanvas/studio/internal/workspace"
)

func TestParse(t *testing.T) {
	m, err := Parse([]byte(`
id: pong
name: Pong
description: A tiny game
files:
  - path: src/main.js
    content: "export {};"
`))
	require.NoError(t, err)
	assert.Equal(t, "pong", m.ID)
	assert.Equal(t, "Pong", m.Name)
	require.Len(t, m.Files, 1)
	assert.Equal(t, "src/main.js", m.Files[0].Path)
}

func TestParseRejectsMissingID(t *testing.T) {
	_, err := Parse([]byte("name: nameless\nfiles: []\n"))
	assert.Error(t, err)
}

func TestParseRejectsPathlessFile(t *testing.T) {
	_, err := Parse([]byte("id: x\nfiles:\n  - content: hi\n"))
	assert.Error(t, err)
}

func TestBuiltins(t *testing.T) {
	r := NewRegistry(logging.NewNop())

	counter, ok := r.Get("counter")
	require.True(t, ok)
	assert.NotEmpty(t, counter.Files)

	_, ok = r.Get("blank")
	assert.True(t, ok)
}

func TestApply(t *testing.T) {
	r := NewRegistry(logging.NewNop())
	w := workspace.NewManager().Create("test")

	require.NoError(t, r.Apply("counter", w))
	assert.Equal(t, "counter", w.Template)

	file, err := w.FS.Read("src/main.js")
	require.NoError(t, err)
	assert.Contains(t, file.Content, "preact")
}

func TestApplyUnknown(t *testing.T) {
	r := NewRegistry(logging.NewNop())
	w := workspace.NewManager().Create("test")
	assert.Error(t, r.Apply("ghost", w))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	manifest := `
id: custom
name: Custom
files:
  - path: src/app.js
    content: "export {};"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.template.yaml"), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.template.yaml"), []byte("id: [unclosed"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	r := NewRegistry(logging.NewNop())
	require.NoError(t, r.LoadDir(dir))

	m, ok := r.Get("custom")
	require.True(t, ok)
	assert.Equal(t, "Custom", m.Name)

	_, ok = r.Get("broken")
	assert.False(t, ok)
}

func TestLoadDirMissing(t *testing.T) {
	r := NewRegistry(logging.NewNop())
	assert.NoError(t, r.LoadDir("/definitely/not/here"))
}
