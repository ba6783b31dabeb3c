// Package lines feeds an input file to a scan operation one logical line at
// a time and counts what it delivered.
package lines

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// Scanner implements ports.LineReader over an io.Reader.
// The slice returned by NextLine is only valid until the next call; scanners
// that keep text across lines must copy it.
type Scanner struct {
	r        *bufio.Reader
	fileName string
	line     []byte
	lineNum  int
	bytes    int64
	err      error
	done     bool
}

// NewScanner reads lines of fileName from r.
func NewScanner(fileName string, r io.Reader) *Scanner {
	return &Scanner{
		r:        bufio.NewReaderSize(r, 64*1024),
		fileName: fileName,
	}
}

// NextLine returns the next line without its "\n" or "\r\n" terminator.
// A final line without a terminator is still returned. The second result is
// false once the input is exhausted or a read error occurred.
func (s *Scanner) NextLine() ([]byte, bool) {
	if s.done {
		return nil, false
	}

	s.line = s.line[:0]
	for {
		chunk, err := s.r.ReadSlice('\n')
		s.line = append(s.line, chunk...)
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		if len(s.line) == 0 {
			return nil, false
		}
		break
	}

	s.bytes += int64(len(s.line))
	s.lineNum++

	line := bytes.TrimSuffix(s.line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return line, true
}

// LineNumber is the 1-based number of the line last returned, 0 before the first.
func (s *Scanner) LineNumber() int { return s.lineNum }

// FileName is the path the scanner was created for.
func (s *Scanner) FileName() string { return s.fileName }

// Lines is the number of lines delivered so far.
func (s *Scanner) Lines() int64 { return int64(s.lineNum) }

// Bytes is the number of input bytes consumed so far, terminators included.
func (s *Scanner) Bytes() int64 { return s.bytes }

// Err returns the first non-EOF read error.
func (s *Scanner) Err() error { return s.err }

// Drain consumes the rest of the input so Lines and Bytes cover the whole
// file even when the scan operation stopped early.
func (s *Scanner) Drain() {
	for {
		if _, ok := s.NextLine(); !ok {
			return
		}
	}
}
