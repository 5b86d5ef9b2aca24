package types

import "time"

// Language classifies a project file by its source language.
type Language string

const (
	LangHTML       Language = "html"
	LangCSS        Language = "css"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJSON       Language = "json"
	LangPlaintext  Language = "plaintext"
)

// Module reports whether files of this language participate in the module
// graph and therefore get import-map entries.
func (l Language) Module() bool {
	return l == LangJavaScript || l == LangTypeScript
}

// ProjectFile is one entry in a workspace's virtual file system. Path is the
// unique key, always relative and slash-separated. Language is derived from
// the path's extension and never set independently.
type ProjectFile struct {
	Path     string   `json:"path"`
	Content  string   `json:"content"`
	Language Language `json:"language"`
}

// Workspace describes one live editing session.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Template  string    `json:"template,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	FileCount int       `json:"file_count"`
}

// Stats contains workspace manager statistics.
type Stats struct {
	TotalWorkspaces int    `json:"total_workspaces"`
	TotalFiles      int    `json:"total_files"`
	TotalBuilds     uint64 `json:"total_builds"`
}
