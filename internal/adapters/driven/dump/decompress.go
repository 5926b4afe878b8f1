package dump

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/INASIC/Chatbot/internal/core/domain"
)

// zstdMaxWindow covers the 2 GiB window used by the monthly comment dumps.
const zstdMaxWindow = 1 << 31

// Compression identifies a dump's compression format.
type Compression string

// Supported compression formats.
const (
	CompressionNone  Compression = "none"
	CompressionZstd  Compression = "zstd"
	CompressionGzip  Compression = "gzip"
	CompressionBzip2 Compression = "bzip2"
	CompressionXZ    Compression = "xz"
)

// DetectCompression picks a format from the file extension.
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".gz", ".gzip":
		return CompressionGzip
	case ".bz2":
		return CompressionBzip2
	case ".xz":
		return CompressionXZ
	default:
		return CompressionNone
	}
}

// decompress wraps r in a reader for c. The returned closer releases the
// decoder only; the caller still owns r.
func decompress(r io.Reader, c Compression) (io.Reader, func() error, error) {
	noop := func() error { return nil }

	switch c {
	case CompressionNone:
		return r, noop, nil

	case CompressionZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderMaxWindow(zstdMaxWindow))
		if err != nil {
			return nil, nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return dec, func() error { dec.Close(); return nil }, nil

	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return zr, zr.Close, nil

	case CompressionBzip2:
		br, err := bzip2.NewReader(r, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("opening bzip2 stream: %w", err)
		}
		return br, br.Close, nil

	case CompressionXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("opening xz stream: %w", err)
		}
		return xr, noop, nil

	default:
		return nil, nil, fmt.Errorf("%w: compression %q", domain.ErrUnsupportedType, c)
	}
}
