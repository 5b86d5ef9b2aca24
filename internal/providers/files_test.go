package providers

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecanvas/studio/internal/config"
	"github.com/codecanvas/studio/internal/logging"
	"github.com/codecanvas/studio/internal/types"
	"github.com/codecanvas/studio/internal/workspace"
)

func newFilesFixture(t *testing.T) (*Files, *workspace.Workspace, *types.Context) {
	t.Helper()
	manager := workspace.NewManager()
	w := manager.Create("test")
	provider := NewFiles(manager, config.Default().Workspace, logging.NewNop())
	return provider, w, &types.Context{WorkspaceID: &w.ID}
}

func execute(t *testing.T, p *Files, toolID string, params map[string]interface{}, ctx *types.Context) *types.Result {
	t.Helper()
	result, err := p.Execute(context.Background(), toolID, params, ctx)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestFilesDefinition(t *testing.T) {
	p, _, _ := newFilesFixture(t)
	def := p.Definition()

	assert.Equal(t, "files", def.ID)
	assert.Equal(t, types.CategoryFiles, def.Category)

	toolIDs := make(map[string]bool)
	for _, tool := range def.Tools {
		toolIDs[tool.ID] = true
	}
	for _, id := range []string{
		"files.create", "files.read", "files.list",
		"files.delete", "files.stat", "files.export",
	} {
		assert.True(t, toolIDs[id], "missing tool %s", id)
	}
}

func TestFilesCreateAndRead(t *testing.T) {
	p, _, ctx := newFilesFixture(t)

	result := execute(t, p, "files.create", map[string]interface{}{
		"path":    "src/main.js",
		"content": "export {};",
	}, ctx)
	require.True(t, result.Success)
	assert.Equal(t, "javascript", result.Data["language"])

	result = execute(t, p, "files.read", map[string]interface{}{
		"path": "src/main.js",
	}, ctx)
	require.True(t, result.Success)
	assert.Equal(t, "export {};", result.Data["content"])
}

func TestFilesCreateShellRejected(t *testing.T) {
	p, w, ctx := newFilesFixture(t)
	before, err := w.FS.Read("index.html")
	require.NoError(t, err)

	result := execute(t, p, "files.create", map[string]interface{}{
		"path":    "index.html",
		"content": "<html>hijacked</html>",
	}, ctx)

	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "read_only_violation")

	after, err := w.FS.Read("index.html")
	require.NoError(t, err)
	assert.Equal(t, before.Content, after.Content)
}

func TestFilesReadMissing(t *testing.T) {
	p, _, ctx := newFilesFixture(t)

	result := execute(t, p, "files.read", map[string]interface{}{
		"path": "ghost.js",
	}, ctx)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "not found")
}

func TestFilesListWithGlob(t *testing.T) {
	p, _, ctx := newFilesFixture(t)
	for _, path := range []string{"src/main.js", "src/lib/math.js", "style.css"} {
		require.True(t, execute(t, p, "files.create", map[string]interface{}{
			"path": path, "content": "",
		}, ctx).Success)
	}

	result := execute(t, p, "files.list", map[string]interface{}{}, ctx)
	require.True(t, result.Success)
	assert.Equal(t, 4, result.Data["count"]) // shell included

	result = execute(t, p, "files.list", map[string]interface{}{
		"glob": "src/**/*.js",
	}, ctx)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.Data["count"])
}

func TestFilesDelete(t *testing.T) {
	p, _, ctx := newFilesFixture(t)
	require.True(t, execute(t, p, "files.create", map[string]interface{}{
		"path": "a.js", "content": "",
	}, ctx).Success)

	result := execute(t, p, "files.delete", map[string]interface{}{"path": "a.js"}, ctx)
	assert.True(t, result.Success)

	result = execute(t, p, "files.delete", map[string]interface{}{"path": "index.html"}, ctx)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "read_only_violation")
}

func TestFilesStat(t *testing.T) {
	p, _, ctx := newFilesFixture(t)
	require.True(t, execute(t, p, "files.create", map[string]interface{}{
		"path": "src/game.ts", "content": "const a = 1;\nconst b = 2;\n",
	}, ctx).Success)

	result := execute(t, p, "files.stat", map[string]interface{}{"path": "src/game.ts"}, ctx)
	require.True(t, result.Success)
	assert.Equal(t, "typescript", result.Data["language"])
	assert.Equal(t, 26, result.Data["size"])
	assert.Equal(t, 3, result.Data["lines"])
}

func TestFilesExport(t *testing.T) {
	p, _, ctx := newFilesFixture(t)
	require.True(t, execute(t, p, "files.create", map[string]interface{}{
		"path": "src/main.js", "content": "export {};",
	}, ctx).Success)

	result := execute(t, p, "files.export", map[string]interface{}{}, ctx)
	require.True(t, result.Success)

	raw, err := base64.StdEncoding.DecodeString(result.Data["archive"].(string))
	require.NoError(t, err)

	gz, err := gzip.NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	tr := tar.NewReader(gz)

	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, hdr.Name)
	}
	assert.ElementsMatch(t, []string{"index.html", "src/main.js"}, names)
}

func TestFilesSizeLimit(t *testing.T) {
	manager := workspace.NewManager()
	w := manager.Create("test")
	limits := config.Default().Workspace
	limits.MaxFileBytes = 8
	p := NewFiles(manager, limits, logging.NewNop())
	ctx := &types.Context{WorkspaceID: &w.ID}

	result := execute(t, p, "files.create", map[string]interface{}{
		"path": "big.js", "content": "0123456789",
	}, ctx)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "byte limit")
}

func TestFilesMissingWorkspace(t *testing.T) {
	p, _, _ := newFilesFixture(t)
	ghost := "no-such-workspace"

	result := execute(t, p, "files.list", nil, &types.Context{WorkspaceID: &ghost})
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "workspace not found")

	result = execute(t, p, "files.list", nil, nil)
	require.False(t, result.Success)
}

func TestFilesUnknownTool(t *testing.T) {
	p, _, ctx := newFilesFixture(t)
	result := execute(t, p, "files.nope", nil, ctx)
	assert.False(t, result.Success)
}
