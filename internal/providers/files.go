package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/codecanvas/studio/internal/config"
	"github.com/codecanvas/studio/internal/logging"
	"github.com/codecanvas/studio/internal/types"
	"github.com/codecanvas/studio/internal/vfs"
	"github.com/codecanvas/studio/internal/workspace"
)

// Files exposes workspace file operations as agent tools.
type Files struct {
	manager *workspace.Manager
	limits  config.WorkspaceConfig
	logger  *logging.Logger
}

// NewFiles creates the files provider.
func NewFiles(manager *workspace.Manager, limits config.WorkspaceConfig, logger *logging.Logger) *Files {
	return &Files{
		manager: manager,
		limits:  limits,
		logger:  logger,
	}
}

// Definition returns the service definition
func (f *Files) Definition() types.Service {
	return types.Service{
		ID:          "files",
		Name:        "Workspace Files",
		Description: "Create, read, and list source files in a workspace's virtual file system",
		Category:    types.CategoryFiles,
		Capabilities: []string{
			"create_file",
			"read_file",
			"list_files",
			"delete_file",
			"export_archive",
		},
		Tools: []types.Tool{
			{
				ID:          "files.create",
				Name:        "Create File",
				Description: "Create or overwrite a file (the index.html shell is read-only)",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Relative, slash-separated path with extension", Required: true},
					{Name: "content", Type: "string", Description: "Raw source text", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "files.read",
				Name:        "Read File",
				Description: "Read a file's content",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "File path", Required: true},
				},
				Returns: "string",
			},
			{
				ID:          "files.list",
				Name:        "List Files",
				Description: "List workspace paths, optionally filtered by glob pattern",
				Parameters: []types.Parameter{
					{Name: "glob", Type: "string", Description: "Optional doublestar pattern, e.g. src/**/*.js", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "files.delete",
				Name:        "Delete File",
				Description: "Remove a file (the index.html shell cannot be deleted)",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "File path", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "files.stat",
				Name:        "File Info",
				Description: "Size, language, and detected media type of a file",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "File path", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "files.export",
				Name:        "Export Workspace",
				Description: "Export all files as a base64 tar.gz archive",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Execute runs a files tool
func (f *Files) Execute(ctx context.Context, toolID string, params map[string]interface{}, wsCtx *types.Context) (*types.Result, error) {
	w, err := resolveWorkspace(f.manager, wsCtx)
	if err != nil {
		return Failure(err.Error())
	}

	switch toolID {
	case "files.create":
		return f.create(w, params)
	case "files.read":
		return f.read(w, params)
	case "files.list":
		return f.list(w, params)
	case "files.delete":
		return f.delete(w, params)
	case "files.stat":
		return f.stat(w, params)
	case "files.export":
		return f.export(w)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (f *Files) create(w *workspace.Workspace, params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}
	content, ok := params["content"].(string)
	if !ok {
		return Failure("content parameter required")
	}

	if len(content) > f.limits.MaxFileBytes {
		return Failure(fmt.Sprintf("file exceeds %d byte limit", f.limits.MaxFileBytes))
	}
	if _, err := w.FS.Read(path); err != nil && w.FS.Len() >= f.limits.MaxFiles {
		return Failure(fmt.Sprintf("workspace exceeds %d file limit", f.limits.MaxFiles))
	}

	if err := w.FS.Create(path, content); err != nil {
		if errors.Is(err, vfs.ErrReadOnly) {
			return Failure("read_only_violation: " + vfs.ShellPath + " is the golden shell")
		}
		return Failure(err.Error())
	}

	f.logger.Debug("file written",
		zap.String("workspace", w.ID),
		zap.String("path", path),
		zap.Int("bytes", len(content)))

	return Success(map[string]interface{}{
		"path":     path,
		"language": string(vfs.LanguageForPath(path)),
		"revision": w.FS.Revision(),
	})
}

func (f *Files) read(w *workspace.Workspace, params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	file, err := w.FS.Read(path)
	if err != nil {
		return Failure(err.Error())
	}
	return Success(map[string]interface{}{
		"path":     file.Path,
		"content":  file.Content,
		"language": string(file.Language),
	})
}

func (f *Files) list(w *workspace.Workspace, params map[string]interface{}) (*types.Result, error) {
	paths := w.FS.List()

	if pattern, ok := stringParam(params, "glob"); ok {
		if !doublestar.ValidatePattern(pattern) {
			return Failure(fmt.Sprintf("invalid glob pattern: %s", pattern))
		}
		filtered := paths[:0]
		for _, p := range paths {
			if match, _ := doublestar.Match(pattern, p); match {
				filtered = append(filtered, p)
			}
		}
		paths = filtered
	}

	return Success(map[string]interface{}{
		"paths": paths,
		"count": len(paths),
	})
}

func (f *Files) delete(w *workspace.Workspace, params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	if err := w.FS.Delete(path); err != nil {
		if errors.Is(err, vfs.ErrReadOnly) {
			return Failure("read_only_violation: " + vfs.ShellPath + " is the golden shell")
		}
		return Failure(err.Error())
	}
	return Success(map[string]interface{}{"deleted": path})
}

func (f *Files) stat(w *workspace.Workspace, params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	file, err := w.FS.Read(path)
	if err != nil {
		return Failure(err.Error())
	}

	return Success(map[string]interface{}{
		"path":     file.Path,
		"language": string(file.Language),
		"size":     len(file.Content),
		"lines":    strings.Count(file.Content, "\n") + 1,
		"mime":     mimetype.Detect([]byte(file.Content)).String(),
	})
}
