package generator

import (
	"path/filepath"
	"strings"
)

// FileNaming handles output file naming and path generation for the
// Go files the generator emits -- one package directory per proto
// package, one set of <snake>.*.pbj.go files per message/enum within it,
// the same directory-per-package layout the teacher uses (package name
// dotted-to-slash, file name derived from the proto's base name).
type FileNaming struct {
	// prefix, when non-empty, is prepended to every output directory
	// instead of the "gen" default -- set from the go_package_prefix
	// plugin option/config field so a caller can relocate the whole
	// generated tree under e.g. "internal/genpb" without touching
	// every proto file's go_package option.
	prefix string
}

// NewFileNaming creates a new file naming handler. An empty prefix
// keeps the "gen" default root.
func NewFileNaming(prefix string) *FileNaming {
	return &FileNaming{prefix: prefix}
}

// PackageDir converts a dotted proto package name to the slash-separated
// output directory the generator writes that package's files into,
// rooted at fn.prefix ("gen" if unset).
func (fn *FileNaming) PackageDir(protoPackage string) string {
	root := fn.prefix
	if root == "" {
		root = "gen"
	}
	if protoPackage == "" {
		return root
	}
	return root + "/" + strings.ReplaceAll(protoPackage, ".", "/")
}

// GoPackageName derives the Go package identifier for a proto package:
// its last dotted component, lowercased, with non-identifier runes
// stripped.
func (fn *FileNaming) GoPackageName(protoPackage string) string {
	if protoPackage == "" {
		return "pbj"
	}
	parts := strings.Split(protoPackage, ".")
	last := parts[len(parts)-1]
	return sanitizePackageName(last)
}

func sanitizePackageName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "pbj"
	}
	return b.String()
}

// baseName strips the .proto extension and directory from a proto file
// path's leaf name.
func baseName(protoFileName string) string {
	return strings.TrimSuffix(filepath.Base(protoFileName), ".proto")
}

// snakeCase converts a CamelCase or mixedCase identifier (message/enum
// name) to snake_case, for the per-type file name prefix.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			prev := byte(0)
			if b.Len() > 0 {
				prev = b.String()[b.Len()-1]
			}
			if i > 0 && prev != '_' {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// OutputFileName builds the "<dir>/<snake>.<suffix>.pbj.go" path for one
// generated file belonging to typeName within protoPackage.
func (fn *FileNaming) OutputFileName(protoPackage, typeName, suffix string) string {
	return fn.PackageDir(protoPackage) + "/" + snakeCase(typeName) + "." + suffix + ".pbj.go"
}
