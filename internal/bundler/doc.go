// Package bundler turns a virtual file system snapshot into one
// self-contained HTML document executable in a sandboxed iframe.
//
// It performs the job of a linker without a compiler: relative module
// specifiers are rewritten to canonical project paths, every module's content
// is encoded into a browser import map as a data URI, stylesheets are inlined
// into one style block, and an error-reporting shim is injected so runtime
// faults surface inside the sandbox instead of crashing the host.
//
// Every stage is a pure function of the snapshot. BuildPreview is total: it
// always produces a document, and problems in generated code manifest only at
// runtime inside the isolated context.
package bundler
