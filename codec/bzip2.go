package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// bzip2ChunkSize is the transfer unit for both directions, the same 256 KiB
// the gzip driver uses.
const bzip2ChunkSize = 256 * 1024

// Bzip2Codec handles the bzip2 block format at maximum compression (level 9,
// i.e. 900 KiB blocks). Unlike the other drivers both directions need a
// third-party backend: the standard library only ships a bzip2 reader.
type Bzip2Codec struct {
	chunkSize int
}

var _ Codec = (*Bzip2Codec)(nil)

// NewBzip2Codec creates a bzip2 codec.
func NewBzip2Codec(opts ...Option) Bzip2Codec {
	return Bzip2Codec{chunkSize: newConfig(bzip2ChunkSize, opts...).chunkSize}
}

// Encode compresses src into a bzip2 stream and returns the bytes written.
func (c Bzip2Codec) Encode(dst io.Writer, src []byte) (int64, error) {
	cw := &countWriter{w: dst}

	zw, err := bzip2.NewWriter(cw, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return 0, fmt.Errorf("%w: bzip2: %v", ErrBackendInit, err)
	}

	feedErr := feedChunks(zw, src, c.chunkSize)
	closeErr := closeBackend(zw)
	if feedErr != nil {
		return cw.n, fmt.Errorf("bzip2 encode: %w", feedErr)
	}
	if closeErr != nil {
		return cw.n, fmt.Errorf("bzip2 encode: %w", closeErr)
	}

	return cw.n, nil
}

// Decode decompresses a bzip2 stream and returns the bytes written.
func (c Bzip2Codec) Decode(dst io.Writer, src []byte) (int64, error) {
	zr, err := bzip2.NewReader(bytes.NewReader(src), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: bzip2: %v", ErrBackendInit, err)
	}
	defer closeBackend(zr)

	cw := &countWriter{w: dst}
	if err := drainChunks(cw, zr, c.chunkSize); err != nil {
		return cw.n, fmt.Errorf("bzip2 decode: %w", err)
	}

	return cw.n, nil
}
