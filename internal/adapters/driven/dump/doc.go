// Package dump reads newline-delimited JSON comment dumps.
//
// Each line is one comment object. Files may be plain or compressed; the
// decompressor is chosen from the file extension:
//
//   - .zst  Zstandard (klauspost/compress), with a long window for monthly dumps
//   - .gz   gzip (klauspost/compress)
//   - .bz2  bzip2 (dsnet/compress)
//   - .xz   xz (ulikunitz/xz)
//
// The path "-" reads an uncompressed stream from standard input.
package dump
