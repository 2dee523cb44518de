//go:build cgo

package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/valyala/gozstd"
)

// zstdCgoLevel is the libzstd compression level used on encode, the highest
// of the non-"ultra" range.
const zstdCgoLevel = 19

// Encode compresses src into a zstd frame via libzstd.
func (c ZstdCodec) Encode(dst io.Writer, src []byte) (int64, error) {
	cw := &countWriter{w: dst}

	zw := gozstd.NewWriterLevel(cw, zstdCgoLevel)
	defer releaseBackend(zw.Release)

	if err := feedChunks(zw, src, c.chunkSize); err != nil {
		return cw.n, fmt.Errorf("zstd encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("zstd encode: %w", err)
	}

	return cw.n, nil
}

// Decode decompresses a zstd frame via libzstd.
func (c ZstdCodec) Decode(dst io.Writer, src []byte) (int64, error) {
	zr := gozstd.NewReader(bytes.NewReader(src))
	defer releaseBackend(zr.Release)

	cw := &countWriter{w: dst}
	if err := drainChunks(cw, zr, c.chunkSize); err != nil {
		return cw.n, fmt.Errorf("zstd decode: %w", err)
	}

	return cw.n, nil
}
