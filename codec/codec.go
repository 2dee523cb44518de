package codec

import (
	"fmt"
	"io"

	"github.com/bootpack/press/format"
)

// Encoder compresses a fully resident payload into a container format.
//
// The src slice is read-only for the duration of the call and must stay valid
// until the call returns; it is never retained. The returned count is the
// exact number of bytes the sink accepted.
type Encoder interface {
	// Encode compresses src and streams the container to dst in bounded
	// chunks, returning the total number of bytes written.
	Encode(dst io.Writer, src []byte) (int64, error)
}

// Decoder strips a container format from a fully resident payload.
type Decoder interface {
	// Decode decompresses src and streams the raw payload to dst in bounded
	// chunks, returning the total number of bytes written.
	Decode(dst io.Writer, src []byte) (int64, error)
}

// Codec combines both directions of one container format.
//
// All built-in codecs are stateless values: per-call backend state (flate
// stream, xz writer, lz4 frame context, ...) is created when Encode or Decode
// is entered and released on every exit path, so a single Codec value is safe
// for concurrent use.
type Codec interface {
	Encoder
	Decoder
}

// Option adjusts the transfer unit a codec uses when feeding or draining its
// backend. The defaults match the wire formats and suit production payloads;
// tests shrink them to exercise chunk boundaries on small inputs.
type Option func(*config)

type config struct {
	chunkSize int
}

// WithChunkSize overrides a codec's default chunk size. Non-positive values
// are ignored.
//
// For Lz4LegacyCodec the chunk size is the uncompressed block size and is
// part of the container contract: both ends must agree on it.
func WithChunkSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

func newConfig(defaultChunkSize int, opts ...Option) config {
	cfg := config{chunkSize: defaultChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

var builtinCodecs = map[format.Format]Codec{
	format.Gzip:      NewGzipCodec(),
	format.Xz:        NewXzCodec(),
	format.Lzma:      NewLzmaCodec(),
	format.Bzip2:     NewBzip2Codec(),
	format.Lz4:       NewLz4Codec(),
	format.Lz4Legacy: NewLz4LegacyCodec(),
	format.Zstd:      NewZstdCodec(),
}

// ForFormat retrieves the built-in Codec for the given container format.
//
// Note the LZMA family asymmetry: format.Xz and format.Lzma resolve to two
// configurations of the same driver that share one auto-detecting decode path
// but emit different containers on encode.
func ForFormat(f format.Format) (Codec, error) {
	if codec, ok := builtinCodecs[f]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}
