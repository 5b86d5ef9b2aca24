package bundler

import (
	"regexp"

	"github.com/codecanvas/studio/internal/types"
)

// The rewrite is textual, not syntactic. Patterns are scoped tightly to
// statement-initial import/export clauses and import() calls so that string
// literals unrelated to import syntax are left alone. A missed rewrite only
// costs an alias lookup in the import map; a wrong one corrupts generated
// code, so false negatives win over false positives.
var (
	// import ... from './x' / export ... from './x'; the clause before the
	// specifier may span lines inside a brace list. The specifier must start
	// with "." or "/".
	staticImportRe = regexp.MustCompile(`(?ms)^([ \t]*(?:import|export)\b[^'";]*?\bfrom\s*)(['"])([./][^'"\n]*)(['"])`)

	// Side-effect form: import './x'
	bareImportRe = regexp.MustCompile(`(?m)^([ \t]*import\s*)(['"])([./][^'"\n]*)(['"])`)

	// Dynamic form: import('./x')
	dynamicImportRe = regexp.MustCompile(`(\bimport\s*\(\s*)(['"])([./][^'"\n]*)(['"])(\s*\))`)
)

// Rewrite returns the file's content with every relative static and dynamic
// import specifier replaced by its canonical project path. Quote style and
// all surrounding syntax are preserved verbatim; only the specifier text
// changes. Non-module files pass through unchanged. Rewrite is pure and
// idempotent: canonical specifiers resolve to themselves.
func Rewrite(file types.ProjectFile) string {
	if !file.Language.Module() {
		return file.Content
	}

	out := rewriteMatches(staticImportRe, file.Path, file.Content)
	out = rewriteMatches(bareImportRe, file.Path, out)
	out = rewriteMatches(dynamicImportRe, file.Path, out)
	return out
}

func rewriteMatches(re *regexp.Regexp, sourcePath, content string) string {
	return re.ReplaceAllStringFunc(content, func(match string) string {
		g := re.FindStringSubmatch(match)
		out := g[1] + g[2] + Resolve(sourcePath, g[3]) + g[4]
		if len(g) > 5 {
			out += g[5]
		}
		return out
	})
}
