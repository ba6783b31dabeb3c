// Package shell recognizes function definitions in Bourne shell scripts and
// their derivatives (bash, Korn and Z shells).
package shell

import (
	"bytes"
	"path/filepath"

	"github.com/corey/ctags/internal/ports"
)

// KindFunction indexes Kinds.
const KindFunction = 0

// Kinds is the shell parser's kind table.
var Kinds = []ports.KindOption{
	{Enabled: true, Letter: 'f', Name: "function", Description: "functions"},
}

var functionKeyword = []byte("function")

// Definition returns the shell parser definition.
func Definition() ports.ParserDefinition {
	return ports.ParserDefinition{
		Name:       "Sh",
		Extensions: []string{"sh", "SH", "bsh", "bash", "ksh", "zsh", "ash"},
		Kinds:      Kinds,
		Scan:       Scan,
	}
}

// Scan finds "name()" and "function name" definitions, one candidate per line.
func Scan(r ports.LineReader, emit ports.EmitFunc) {
	reject := isConfigureScript(r.FileName())
	name := make([]byte, 0, 64)

	for {
		line, ok := r.NextLine()
		if !ok {
			return
		}
		if candidate, found := scanLine(line, name[:0]); found {
			// autoconf scripts define main() inside here-documents
			if !(reject && candidate == "main") {
				emit(candidate, KindFunction)
			}
		}
	}
}

// scanLine applies the per-line state machine. buf is the working identifier
// buffer; it is reset by the caller before every line.
func scanLine(line, buf []byte) (string, bool) {
	if len(line) > 0 && line[0] == '#' {
		return "", false
	}

	cp := skipSpace(line, 0)
	found := false

	if bytes.HasPrefix(line[cp:], functionKeyword) && cp+len(functionKeyword) < len(line) &&
		isSpace(line[cp+len(functionKeyword)]) {
		found = true
		cp = skipSpace(line, cp+len(functionKeyword))
	}

	if cp >= len(line) || !isIdentChar(line[cp]) {
		return "", false
	}
	for cp < len(line) && isIdentChar(line[cp]) {
		buf = append(buf, line[cp])
		cp++
	}

	cp = skipSpace(line, cp)
	if cp < len(line) && line[cp] == '(' {
		cp = skipSpace(line, cp+1)
		if cp < len(line) && line[cp] == ')' {
			found = true
		}
	}

	if !found {
		return "", false
	}
	return string(buf), true
}

func isConfigureScript(fileName string) bool {
	return filepath.Base(fileName) == "configure"
}

func skipSpace(line []byte, i int) int {
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	return i
}

// isSpace matches the C locale whitespace set.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isIdentChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
