package ports

// KindOption describes one category of symbol a parser can recognize.
// Kind tables are immutable once their parser is registered; tags reference
// an entry by its index.
type KindOption struct {
	Enabled     bool
	Letter      byte   // single-character code, e.g. 'f'
	Name        string // long name, e.g. "function"
	Description string // plural description, e.g. "functions"
}

// LineReader supplies the input file one logical line at a time.
// Lines are delivered strictly in file order and never re-delivered.
type LineReader interface {
	// NextLine returns the next line without its terminator. The second
	// result is false at end of input.
	NextLine() ([]byte, bool)

	// LineNumber is the 1-based number of the line last returned.
	LineNumber() int

	// FileName is the path of the file being read, as given to the walker.
	FileName() string
}

// EmitFunc records a recognized symbol at the reader's current line.
// kind indexes the active parser's kind table.
type EmitFunc func(name string, kind int)

// ScanFunc is a language-specific scanner. It consumes lines from r until
// end of input and reports every symbol through emit.
type ScanFunc func(r LineReader, emit EmitFunc)

// ParserDefinition bundles the extensions, kinds and scan logic for one
// source language.
type ParserDefinition struct {
	Name       string
	Extensions []string // without the leading dot, matched case-sensitively
	Kinds      []KindOption
	Scan       ScanFunc
}

// Tag is one recognized symbol definition.
type Tag struct {
	Name     string
	Kind     int    // index into the parser's kind table
	File     string // originating file path
	Line     int    // 1-based
	Language string // parser name

	// KindInfo is a copy of Kinds[Kind], carried so sinks need no registry.
	KindInfo KindOption
}
