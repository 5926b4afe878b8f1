// Package corpus writes exported pairs as line-aligned parallel text files.
//
// Each split has a prompt file (<split>.from) holding parent bodies and a
// reply file (<split>.to) holding reply bodies. Line i of one corresponds to
// line i of the other. Files are opened for append, so repeated exports into
// the same directory accumulate.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
)

// File extensions for the two sides of a split.
const (
	PromptExt = ".from"
	ReplyExt  = ".to"
)

// Ensure Writer implements the interface.
var _ driven.CorpusWriter = (*Writer)(nil)

// Writer appends pairs to <dir>/<split>.from and <dir>/<split>.to.
type Writer struct {
	dir   string
	files map[domain.Split]*splitFiles
}

type splitFiles struct {
	from, to       *os.File
	fromBuf, toBuf *bufio.Writer
}

// NewWriter creates a writer rooted at dir, creating the directory if needed.
// If dir is empty, defaults to ~/.chatbot/corpus.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".chatbot", "corpus")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating corpus directory: %w", err)
	}
	return &Writer{dir: dir, files: make(map[domain.Split]*splitFiles)}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the file path for one side of a split.
func (w *Writer) Path(split domain.Split, ext string) string {
	return filepath.Join(w.dir, string(split)+ext)
}

// WritePage appends one line per pair to both files of split and flushes
// them. A body that is absent is written as an empty line so the files stay
// aligned.
func (w *Writer) WritePage(split domain.Split, pairs []domain.Pair) error {
	f, err := w.open(split)
	if err != nil {
		return err
	}

	for _, p := range pairs {
		if _, err := f.fromBuf.WriteString(line(p.ParentBody)); err != nil {
			return fmt.Errorf("writing %s: %w", f.from.Name(), err)
		}
		if _, err := f.toBuf.WriteString(line(p.ReplyBody)); err != nil {
			return fmt.Errorf("writing %s: %w", f.to.Name(), err)
		}
	}

	if err := f.fromBuf.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", f.from.Name(), err)
	}
	if err := f.toBuf.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", f.to.Name(), err)
	}
	return nil
}

// Close flushes and closes every open file.
func (w *Writer) Close() error {
	var errs []error
	for split, f := range w.files {
		errs = append(errs,
			f.fromBuf.Flush(), f.toBuf.Flush(),
			f.from.Close(), f.to.Close())
		delete(w.files, split)
	}
	return errors.Join(errs...)
}

func (w *Writer) open(split domain.Split) (*splitFiles, error) {
	if f, ok := w.files[split]; ok {
		return f, nil
	}

	from, err := appendFile(w.Path(split, PromptExt))
	if err != nil {
		return nil, err
	}
	to, err := appendFile(w.Path(split, ReplyExt))
	if err != nil {
		from.Close()
		return nil, err
	}

	f := &splitFiles{
		from:    from,
		to:      to,
		fromBuf: bufio.NewWriter(from),
		toBuf:   bufio.NewWriter(to),
	}
	w.files[split] = f
	return f, nil
}

func appendFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}

// line terminates a body with a newline. Bodies are normalised before
// storage, but a stray line break would shift every later line, so any
// that remain are flattened to spaces.
func line(body string) string {
	if strings.ContainsAny(body, "\r\n") {
		body = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(body)
	}
	return body + "\n"
}
