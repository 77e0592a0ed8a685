// Package model defines the row shapes written by the parser and read back
// by the query engine. kind-like fields are plain strings rather than closed
// Go enums: new languages can introduce new symbol/import/comment kinds
// without a schema migration.
package model

// FileMetadata describes one scanned source file.
type FileMetadata struct {
	Path      string // relative to the scan root, forward-slash separated
	Name      string // base name, e.g. "writer.go"
	Language  string // language tag, e.g. "go", "typescript"
	SizeBytes int64
	LineCount int
}

// SymbolInfo describes one named declaration found in a file.
type SymbolInfo struct {
	Name string
	// function, method, class, struct, union, enum, interface, type_alias,
	// typedef, trait, constant, variable, property, namespace, module,
	// macro, arrow_function — open set, new languages add new values.
	Kind        string
	FilePath    string
	StartLine   uint32
	StartColumn uint32
	EndLine     uint32
	EndColumn   uint32
	IsExported  bool
}

// ImportInfo describes one import/use/include edge out of a file.
type ImportInfo struct {
	SourceFile      string
	ModuleSpecifier string // the raw string written in source, e.g. "./util" or "crate::models"
	ImportedName    string // name as exported by the module; "*" for a wildcard/namespace import
	LocalName       string // name bound in this file (equal to ImportedName unless aliased)
	Kind            string // static, dynamic, require, re_export, include, using, use, import, from, ...
	IsTypeOnly      bool
	Line            uint32
	IsExternal      bool // true when the specifier resolves outside the scanned tree
}

// CommentInfo describes one standalone or doc comment.
type CommentInfo struct {
	FilePath             string
	Text                 string
	Kind                 string // line, block, doc
	StartLine            uint32
	EndLine              uint32
	AssociatedSymbol     *string
	AssociatedSymbolKind *string
}

// ErrorRecord describes one file that failed to parse or extract cleanly.
type ErrorRecord struct {
	FilePath  string
	Language  string
	ErrorType string // parse_error, read_error, unsupported_language
	Message   string
}
