package vfs

import (
	"path"
	"strings"

	"github.com/src-d/enry/v2"

	"github.com/codecanvas/studio/internal/types"
)

// LanguageForPath derives a file's language from its extension alone. The
// mapping is deterministic: the same path always yields the same language,
// regardless of content. Extensions outside the closed set are classified
// through enry's extension tables before falling back to plaintext.
func LanguageForPath(p string) types.Language {
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return types.LangHTML
	case ".css":
		return types.LangCSS
	case ".js", ".mjs", ".jsx":
		return types.LangJavaScript
	case ".ts", ".tsx":
		return types.LangTypeScript
	case ".json":
		return types.LangJSON
	}

	// enry keys detection on the filename only here, so the result stays a
	// pure function of the path.
	if lang, ok := enry.GetLanguageByExtension(p); ok {
		switch lang {
		case "HTML":
			return types.LangHTML
		case "CSS":
			return types.LangCSS
		case "JavaScript":
			return types.LangJavaScript
		case "TypeScript":
			return types.LangTypeScript
		case "JSON":
			return types.LangJSON
		}
	}

	return types.LangPlaintext
}
