package bundler

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/codecanvas/studio/internal/types"
	"github.com/codecanvas/studio/internal/vfs"
)

// BuildPreview renders the complete sandbox document for a snapshot. It is
// total: whatever the snapshot contains, a loadable HTML string comes back.
// Correctness problems in generated code surface only at runtime inside the
// sandbox, through the injected error shim.
func BuildPreview(snap vfs.Snapshot) string {
	return Assemble(snap)
}

// Assemble composes the entry document, import map, inlined styles, and
// error shim into one HTML string.
//
// The document is manipulated as a parsed tree rather than by string
// surgery: the html5 parser guarantees head and body nodes exist even for a
// malformed shell, so fragment insertion is never order-sensitive and a
// missing tag degrades gracefully instead of failing the build.
func Assemble(snap vfs.Snapshot) string {
	shell := fallbackShell
	if entry, ok := snap.Files[vfs.ShellPath]; ok && strings.TrimSpace(entry.Content) != "" {
		shell = entry.Content
	}

	importMapJSON, err := Synthesize(snap).JSON()
	if err != nil {
		// A map[string]string cannot fail to marshal; guard anyway.
		importMapJSON = `{"imports":{}}`
	}

	headBlock := fmt.Sprintf("<script type=\"importmap\">\n%s\n</script>\n<style>\n%s</style>", importMapJSON, styleSheet(snap))
	shimBlock := "<script>\n" + errorShim + "\n</script>"

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(shell))
	if err != nil {
		// Parser rejected the shell outright; fall back to raw composition.
		return headBlock + "\n" + shimBlock + "\n" + shell
	}

	inlineEntryScripts(doc)

	doc.Find("head").First().PrependHtml(headBlock)
	doc.Find("body").First().PrependHtml(shimBlock)

	html, err := doc.Html()
	if err != nil {
		return headBlock + "\n" + shimBlock + "\n" + shell
	}
	return html
}

// inlineEntryScripts replaces each module script's src reference with an
// inline side-effecting import of the resolved path, so the entry point
// loads through the import map instead of a network request. External URLs
// are left alone.
func inlineEntryScripts(doc *goquery.Document) {
	doc.Find(`script[type="module"][src]`).Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if src == "" || isExternalURL(src) {
			return
		}

		s.RemoveAttr("src")
		// script is a raw-text element: fragment parsing in script context
		// keeps the statement verbatim, while SetText would entity-escape
		// the quotes and they would never be decoded at load time.
		s.SetHtml(fmt.Sprintf("import %q;", Resolve(vfs.ShellPath, src)))
	})
}

// styleSheet concatenates every CSS file into one block, each file preceded
// by a comment naming its origin for debuggability. No CSS files yields an
// empty block, which is still emitted.
func styleSheet(snap vfs.Snapshot) string {
	var b strings.Builder
	for _, p := range snap.Paths() {
		file := snap.Files[p]
		if file.Language != types.LangCSS {
			continue
		}
		fmt.Fprintf(&b, "/* %s */\n%s\n", p, strings.TrimRight(file.Content, "\n"))
	}
	// style is a raw-text element terminated by the first "</", so a literal
	// one inside file content would end the block and promote the rest to
	// live head nodes. The escaped form is inert to both parsers.
	return strings.ReplaceAll(b.String(), "</", "<\\/")
}

func isExternalURL(src string) bool {
	return strings.HasPrefix(src, "http://") ||
		strings.HasPrefix(src, "https://") ||
		strings.HasPrefix(src, "//") ||
		strings.HasPrefix(src, "data:")
}
