package bundler

import "strings"

// Resolve maps a module specifier found in sourcePath to a project-relative
// path.
//
// Bare specifiers (no leading "." or "/") are returned unchanged; they are
// satisfied by the import map's fixed CDN entries. A leading "/" means
// project-root-relative: the slash is stripped and the rest returned as-is.
// Anything else is resolved against sourcePath's directory segment by
// segment, where ".." pops a directory and popping past the root is a no-op.
//
// No existence check and no extension inference happen here. "./util" stays
// "util"; the import map's aliases cover extension-less references.
func Resolve(sourcePath, specifier string) string {
	if !strings.HasPrefix(specifier, ".") && !strings.HasPrefix(specifier, "/") {
		return specifier
	}
	if strings.HasPrefix(specifier, "/") {
		return strings.TrimPrefix(specifier, "/")
	}

	var segs []string
	if i := strings.LastIndex(sourcePath, "/"); i >= 0 {
		segs = strings.Split(sourcePath[:i], "/")
	}

	for _, seg := range strings.Split(specifier, "/") {
		switch seg {
		case "", ".":
			// no-op
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			}
		default:
			segs = append(segs, seg)
		}
	}

	return strings.Join(segs, "/")
}
