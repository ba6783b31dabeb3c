// Package tagfile implements ports.TagSink as a plain text file with one
// record per line:
//
//	name<TAB>file<TAB>line;"<TAB>kind
//
// Records are buffered until Close so they can be sorted as a whole,
// including the records of an existing file in append mode.
package tagfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/corey/ctags/internal/ports"
)

// Stdout names standard output as the destination.
const Stdout = "-"

// Writer buffers records and writes them on Close.
type Writer struct {
	path    string
	out     io.Writer // set for Stdout
	records []string
	prior   int
	closed  bool
}

// Open prepares a writer for path. With appendMode the records already in
// path are kept; a missing file is not an error. Comment lines starting
// with "!_" are dropped.
func Open(path string, appendMode bool) (*Writer, error) {
	w := &Writer{path: path}
	if path == Stdout {
		w.out = os.Stdout
		return w, nil
	}
	if !appendMode {
		return w, nil
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return w, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open tag file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "!_") {
			continue
		}
		w.records = append(w.records, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tag file: %w", err)
	}
	w.prior = len(w.records)
	return w, nil
}

// NewWriter writes to out instead of a file. Used for tests and pipes.
func NewWriter(out io.Writer) *Writer {
	return &Writer{path: Stdout, out: out}
}

// Format renders one record.
func Format(tag ports.Tag) string {
	return fmt.Sprintf("%s\t%s\t%d;\"\t%c", tag.Name, tag.File, tag.Line, tag.KindInfo.Letter)
}

// Put buffers tag.
func (w *Writer) Put(tag ports.Tag) error {
	if w.closed {
		return fmt.Errorf("tag file %s: put after close", w.path)
	}
	w.records = append(w.records, Format(tag))
	return nil
}

// Sort orders records bytewise, which orders by name first.
func (w *Writer) Sort() error {
	sort.Strings(w.records)
	return nil
}

// Prior is the number of records kept from an existing file.
func (w *Writer) Prior() int { return w.prior }

// Close writes every record. Files are written to a temporary sibling and
// renamed into place so a failed run leaves the old file intact.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.out != nil {
		return writeRecords(w.out, w.records)
	}

	tmp := w.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create tag file: %w", err)
	}
	if err := writeRecords(f, w.records); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write tag file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write tag file: %w", err)
	}
	return os.Rename(tmp, w.path)
}

func writeRecords(out io.Writer, records []string) error {
	bw := bufio.NewWriter(out)
	for _, r := range records {
		if _, err := bw.WriteString(r); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
