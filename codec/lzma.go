package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

const (
	// lzmaChunkSize is the transfer unit for the LZMA family, mirroring the
	// stdio-sized buffer the original repacker uses for liblzma.
	lzmaChunkSize = 8 * 1024

	// lzmaDictCap is the dictionary capacity for both directions, sized to
	// LZMA preset 9 (64 MiB). On decode it acts as a floor, not a limit:
	// the readers grow the dictionary to whatever the stream declares.
	lzmaDictCap = 64 << 20
)

var xzHeaderMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// LzmaCodec handles the LZMA family. One decode path consumes both the XZ
// container and the legacy standalone ("alone") container; the encode path
// emits one or the other depending on how the codec was constructed.
type LzmaCodec struct {
	chunkSize int
	alone     bool
}

var _ Codec = (*LzmaCodec)(nil)

// NewXzCodec creates a codec that encodes the XZ container (single LZMA2
// filter, CRC32 integrity check).
func NewXzCodec(opts ...Option) LzmaCodec {
	return LzmaCodec{chunkSize: newConfig(lzmaChunkSize, opts...).chunkSize}
}

// NewLzmaCodec creates a codec that encodes the legacy alone container,
// the predecessor of XZ without its multi-filter and checksum framing.
func NewLzmaCodec(opts ...Option) LzmaCodec {
	return LzmaCodec{chunkSize: newConfig(lzmaChunkSize, opts...).chunkSize, alone: true}
}

// Encode compresses src into the configured container and returns the bytes
// written.
func (c LzmaCodec) Encode(dst io.Writer, src []byte) (int64, error) {
	cw := &countWriter{w: dst}

	var (
		zw  io.WriteCloser
		err error
	)
	if c.alone {
		// The alone header carries the uncompressed size, which is known
		// because the whole input is resident. A size of zero would be
		// marshaled as the unknown-size header, and that layout needs the
		// end-of-stream marker to terminate the stream.
		cfg := lzma.WriterConfig{DictCap: lzmaDictCap}
		if len(src) > 0 {
			cfg.SizeInHeader = true
			cfg.Size = int64(len(src))
		} else {
			cfg.EOSMarker = true
		}
		zw, err = cfg.NewWriter(cw)
	} else {
		cfg := xz.WriterConfig{
			DictCap:  lzmaDictCap,
			CheckSum: xz.CRC32,
		}
		zw, err = cfg.NewWriter(cw)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: lzma: %v", ErrBackendInit, err)
	}

	feedErr := feedChunks(zw, src, c.chunkSize)
	closeErr := closeBackend(zw)
	if feedErr != nil {
		return cw.n, fmt.Errorf("lzma encode: %w", feedErr)
	}
	if closeErr != nil {
		return cw.n, fmt.Errorf("lzma encode: %w", closeErr)
	}

	return cw.n, nil
}

// Decode auto-detects the container from the stream head: the XZ magic
// selects the XZ reader, anything else is treated as an alone stream.
func (c LzmaCodec) Decode(dst io.Writer, src []byte) (int64, error) {
	var (
		zr  io.Reader
		err error
	)
	if bytes.HasPrefix(src, xzHeaderMagic) {
		zr, err = xz.ReaderConfig{DictCap: lzmaDictCap}.NewReader(bytes.NewReader(src))
	} else {
		zr, err = lzma.ReaderConfig{DictCap: lzmaDictCap}.NewReader(bytes.NewReader(src))
	}
	if err != nil {
		return 0, fmt.Errorf("%w: lzma: %v", ErrBackendInit, err)
	}

	cw := &countWriter{w: dst}
	if err := drainChunks(cw, zr, c.chunkSize); err != nil {
		return cw.n, fmt.Errorf("lzma decode: %w", err)
	}

	return cw.n, nil
}
