package bundler

import (
	"encoding/base64"
	"path"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/codecanvas/studio/internal/vfs"
)

// ImportMap is the browser-native specifier → location mapping consulted by
// the sandbox's module loader.
type ImportMap struct {
	Imports map[string]string `json:"imports"`
}

// cdnImports is the fixed registry of third-party bare specifiers. It is a
// closed allowlist, pinned to one version and one origin each, and must stay
// byte-identical across builds or previously generated code breaks.
var cdnImports = map[string]string{
	"preact":          "https://esm.sh/preact@10.23.1",
	"preact/hooks":    "https://esm.sh/preact@10.23.1/hooks",
	"htm":             "https://esm.sh/htm@3.1.1",
	"canvas-confetti": "https://esm.sh/canvas-confetti@1.9.3",
	"animejs":         "https://esm.sh/animejs@3.2.2",
}

// sourceExtensions are the extensions stripped when registering
// extension-less aliases.
var sourceExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".mjs": true,
	".ts":  true,
	".tsx": true,
}

// Synthesize builds the import map for a snapshot: the fixed CDN registry
// plus one data-URI entry per module file, registered under every specifier
// form the generating model plausibly emits. For a given snapshot the result
// is identical on every call; files are processed in sorted path order, so
// when two files alias to the same extension-stripped key the later path
// wins.
func Synthesize(snap vfs.Snapshot) ImportMap {
	imports := make(map[string]string, len(cdnImports)+len(snap.Files)*6)
	for spec, url := range cdnImports {
		imports[spec] = url
	}

	for _, p := range snap.Paths() {
		file := snap.Files[p]
		if p == vfs.ShellPath || !file.Language.Module() {
			continue
		}

		uri := moduleDataURI(Rewrite(file))
		for _, alias := range Aliases(p) {
			imports[alias] = uri
		}
	}

	return ImportMap{Imports: imports}
}

// Aliases returns every specifier form that must resolve to the module at p:
// the canonical path, "./"- and "/"-prefixed variants, and the same three
// with a recognized source extension stripped. The redundancy absorbs the
// generator's inconsistent import conventions.
func Aliases(p string) []string {
	aliases := []string{p, "./" + p, "/" + p}
	if ext := path.Ext(p); sourceExtensions[strings.ToLower(ext)] {
		bare := strings.TrimSuffix(p, ext)
		aliases = append(aliases, bare, "./"+bare, "/"+bare)
	}
	return aliases
}

// JSON returns the serialized map as placed inside the importmap script tag.
// ConfigStd sorts map keys, so serialization is deterministic.
func (m ImportMap) JSON() (string, error) {
	data, err := sonic.ConfigStd.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// moduleDataURI encodes rewritten module text as a self-describing resource
// the browser loads as an ES module without any network fetch.
func moduleDataURI(code string) string {
	return "data:text/javascript;base64," + base64.StdEncoding.EncodeToString([]byte(code))
}
