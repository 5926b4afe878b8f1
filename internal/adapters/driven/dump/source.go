package dump

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
)

const (
	// readBufferSize is the buffered reader size over the decompressed stream.
	readBufferSize = 1 << 20

	// MaxLineBytes bounds a single record. Longer lines are skipped as malformed.
	MaxLineBytes = 16 << 20
)

// StdinPath reads the dump from standard input.
const StdinPath = "-"

// Ensure Source implements the interface.
var _ driven.CommentSource = (*Source)(nil)

// Source streams comments from one dump file.
type Source struct {
	name    string
	file    io.Closer
	release func() error
	reader  *bufio.Reader
	line    int64
	maxLine int
}

// NewSource reads comments from r, decompressing with c. Closing the source
// releases the decoder but not r.
func NewSource(name string, r io.Reader, c Compression) (*Source, error) {
	dr, release, err := decompress(r, c)
	if err != nil {
		return nil, err
	}
	return &Source{
		name:    name,
		release: release,
		reader:  bufio.NewReaderSize(dr, readBufferSize),
		maxLine: MaxLineBytes,
	}, nil
}

// Name returns the dump path.
func (s *Source) Name() string {
	return s.name
}

// Line returns the number of lines consumed so far.
func (s *Source) Line() int64 {
	return s.line
}

// Next returns the next comment. Blank lines are passed over. A line that
// fails to decode returns an error matching domain.IsSkippable.
func (s *Source) Next(ctx context.Context) (domain.Comment, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.Comment{}, err
		}

		line, size, err := s.readLine()
		if err != nil {
			return domain.Comment{}, err
		}
		s.line++

		if line == nil && size > 0 {
			return domain.Comment{}, fmt.Errorf("%w: line %d is %d bytes", domain.ErrMalformedRecord, s.line, size)
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		c, err := parseLine(line)
		if err != nil {
			return domain.Comment{}, fmt.Errorf("line %d: %w", s.line, err)
		}
		return c, nil
	}
}

// readLine returns the next line and its full size in bytes. A final line
// without a newline is still returned; io.EOF follows it. Bytes past maxLine
// are discarded as they are read, and an overlong line comes back nil with
// its size so memory stays bounded by maxLine.
func (s *Source) readLine() ([]byte, int, error) {
	var (
		line []byte
		size int
	)
	for {
		chunk, err := s.reader.ReadSlice('\n')
		size += len(chunk)
		if size <= s.maxLine+1 {
			line = append(line, chunk...)
		} else {
			line = nil
		}

		switch {
		case err == nil:
			return line, size, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if size == 0 {
				return nil, 0, io.EOF
			}
			return line, size, nil
		default:
			return nil, 0, fmt.Errorf("reading %s: %w", s.name, err)
		}
	}
}

// Close releases the decoder and the underlying file, if the source owns one.
func (s *Source) Close() error {
	var errs []error
	if s.release != nil {
		errs = append(errs, s.release())
	}
	if s.file != nil {
		errs = append(errs, s.file.Close())
	}
	return errors.Join(errs...)
}

// Ensure Opener implements the interface.
var _ driven.CommentSourceOpener = (*Opener)(nil)

// Opener opens dump files by path.
type Opener struct {
	stdin io.Reader
}

// NewOpener creates an opener. stdin backs the "-" path; nil uses os.Stdin.
func NewOpener(stdin io.Reader) *Opener {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Opener{stdin: stdin}
}

// Open opens path and picks a decompressor from its extension.
func (o *Opener) Open(path string) (driven.CommentSource, error) {
	if path == StdinPath {
		return NewSource("stdin", o.stdin, CompressionNone)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening dump: %w", err)
	}

	src, err := NewSource(path, f, DetectCompression(path))
	if err != nil {
		f.Close()
		return nil, err
	}
	src.file = f
	return src, nil
}
