package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipChunkSize is the transfer unit for both directions, matching the
// 256 KiB chunk the original repacker streams through zlib.
const gzipChunkSize = 256 * 1024

// GzipCodec wraps a DEFLATE stream in gzip framing at maximum compression.
type GzipCodec struct {
	chunkSize int
}

var _ Codec = (*GzipCodec)(nil)

// NewGzipCodec creates a gzip codec.
func NewGzipCodec(opts ...Option) GzipCodec {
	return GzipCodec{chunkSize: newConfig(gzipChunkSize, opts...).chunkSize}
}

// Encode compresses src into a gzip member and returns the bytes written.
func (c GzipCodec) Encode(dst io.Writer, src []byte) (int64, error) {
	cw := &countWriter{w: dst}

	zw, err := gzip.NewWriterLevel(cw, gzip.BestCompression)
	if err != nil {
		return 0, fmt.Errorf("%w: gzip: %v", ErrBackendInit, err)
	}

	feedErr := feedChunks(zw, src, c.chunkSize)
	closeErr := closeBackend(zw)
	if feedErr != nil {
		return cw.n, fmt.Errorf("gzip encode: %w", feedErr)
	}
	if closeErr != nil {
		return cw.n, fmt.Errorf("gzip encode: %w", closeErr)
	}

	return cw.n, nil
}

// Decode decompresses gzip data (including concatenated members) and returns
// the bytes written.
func (c GzipCodec) Decode(dst io.Writer, src []byte) (int64, error) {
	zr, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return 0, fmt.Errorf("%w: gzip: %v", ErrBackendInit, err)
	}
	defer closeBackend(zr)

	cw := &countWriter{w: dst}
	if err := drainChunks(cw, zr, c.chunkSize); err != nil {
		return cw.n, fmt.Errorf("gzip decode: %w", err)
	}

	return cw.n, nil
}
