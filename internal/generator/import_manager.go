package generator

import "sort"

// ImportManager tracks the Go import paths a generated file's body
// actually references and renders the import block once the body is
// fully written, the same deferred-rendering role the teacher's
// ImportManager plays for Solidity import statements -- except a Go
// file only needs imports for packages it names, so this is a set
// collected while the body is generated rather than a dependency-graph
// walk over the proto file's declared imports.
type ImportManager struct {
	modulePath string
	paths      map[string]struct{}
}

// NewImportManager creates a new import manager. modulePath is this
// module's own path (github.com/pbj-go/pbj), used to prefix references
// to our own runtime packages (wire, buffer, schema, codec, runtime,
// oneof) alongside third-party imports.
func NewImportManager(modulePath string) *ImportManager {
	return &ImportManager{modulePath: modulePath, paths: make(map[string]struct{})}
}

// Use records that the generated body references the named runtime
// subpackage (e.g. "wire", "codec") and returns its import path.
func (im *ImportManager) Use(subpackage string) string {
	path := im.modulePath + "/" + subpackage
	im.paths[path] = struct{}{}
	return path
}

// UseRaw records an arbitrary third-party or standard-library import path
// verbatim (e.g. "math/rand", "encoding/base64").
func (im *ImportManager) UseRaw(path string) {
	im.paths[path] = struct{}{}
}

// Render writes the file's import block. Standard library and
// third-party/own-module imports are grouped in two parens-separated
// blocks the way gofmt groups them, sorted within each group.
func (im *ImportManager) Render(b *WriteableBuffer) {
	if len(im.paths) == 0 {
		return
	}
	var std, other []string
	for p := range im.paths {
		if isStdlibPath(p) {
			std = append(std, p)
		} else {
			other = append(other, p)
		}
	}
	sort.Strings(std)
	sort.Strings(other)

	b.P("import (")
	b.Indent()
	for _, p := range std {
		b.P("\"" + p + "\"")
	}
	if len(std) > 0 && len(other) > 0 {
		b.P0()
	}
	for _, p := range other {
		b.P("\"" + p + "\"")
	}
	b.Unindent()
	b.P(")")
	b.P0()
}

// isStdlibPath reports whether an import path looks like a standard
// library package (no dot in its first path segment) rather than a
// module path.
func isStdlibPath(path string) bool {
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '/':
			return true
		case '.':
			return false
		}
	}
	return true
}
