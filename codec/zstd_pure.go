//go:build !cgo

package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Encode compresses src into a zstd frame with the pure-Go backend.
func (c ZstdCodec) Encode(dst io.Writer, src []byte) (int64, error) {
	cw := &countWriter{w: dst}

	zw, err := zstd.NewWriter(cw,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: zstd: %v", ErrBackendInit, err)
	}

	feedErr := feedChunks(zw, src, c.chunkSize)
	closeErr := closeBackend(zw)
	if feedErr != nil {
		return cw.n, fmt.Errorf("zstd encode: %w", feedErr)
	}
	if closeErr != nil {
		return cw.n, fmt.Errorf("zstd encode: %w", closeErr)
	}

	return cw.n, nil
}

// Decode decompresses a zstd frame with the pure-Go backend.
func (c ZstdCodec) Decode(dst io.Writer, src []byte) (int64, error) {
	zr, err := zstd.NewReader(bytes.NewReader(src), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return 0, fmt.Errorf("%w: zstd: %v", ErrBackendInit, err)
	}
	defer releaseBackend(zr.Close)

	cw := &countWriter{w: dst}
	if err := drainChunks(cw, zr, c.chunkSize); err != nil {
		return cw.n, fmt.Errorf("zstd decode: %w", err)
	}

	return cw.n, nil
}
