package bundler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		sourcePath string
		specifier  string
		want       string
	}{
		{"sibling", "src/a/b.js", "./c.js", "src/a/c.js"},
		{"parent", "src/a/b.js", "../c.js", "src/c.js"},
		{"underflow is a no-op", "x.js", "../../y.js", "y.js"},
		{"root relative", "x.js", "/z.js", "z.js"},
		{"bare specifier unchanged", "x.js", "preact", "preact"},
		{"bare submodule unchanged", "src/main.js", "preact/hooks", "preact/hooks"},
		{"dot segment", "src/a/b.js", "././/c.js", "src/a/c.js"},
		{"deep descent", "src/main.js", "./lib/math/vec.js", "src/lib/math/vec.js"},
		{"up then down", "src/ui/button.js", "../lib/dom.js", "src/lib/dom.js"},
		{"top level sibling", "main.js", "./util.js", "util.js"},
		{"no extension inference", "src/main.js", "./util", "src/util"},
		{"root relative nested", "src/a/b.js", "/lib/x.js", "lib/x.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.sourcePath, tt.specifier))
		})
	}
}
