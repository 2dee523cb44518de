// Package press adds and removes container compression on boot-image
// payloads (ramdisks, kernels) held fully in memory.
//
// It normalizes structurally different codec backends — gzip/DEFLATE,
// XZ/LZMA2, standalone LZMA, bzip2, the two incompatible LZ4 containers and
// zstd — behind one streaming contract: transform an in-memory buffer,
// deliver the result to an io.Writer in bounded chunks, and report the exact
// number of bytes produced.
//
// # Basic Usage
//
// Compressing a payload:
//
//	f, _ := os.Create("ramdisk.cpio.lz4")
//	n, err := press.Compress(format.Lz4Legacy, f, ramdisk)
//
// Decompressing when the container is unknown:
//
//	tag, ok := format.Detect(payload)
//	if !ok {
//	    return fmt.Errorf("not a supported archive")
//	}
//	n, err := press.Decompress(tag, dst, payload)
//
// # Package Structure
//
// This package provides thin wrappers around the codec package, which holds
// the per-format drivers and the dispatch table. The format package carries
// the format tags, magic-byte detection and extension mapping.
package press

import (
	"io"

	"github.com/bootpack/press/codec"
	"github.com/bootpack/press/format"
)

// Compress compresses src into the container format f, streaming the result
// to dst. It returns the total number of bytes written to dst.
//
// For format.Lzma this selects the standalone alone-format encoder, distinct
// from the XZ container selected by format.Xz.
func Compress(f format.Format, dst io.Writer, src []byte) (int64, error) {
	c, err := codec.ForFormat(f)
	if err != nil {
		return 0, err
	}

	return c.Encode(dst, src)
}

// Decompress strips the container format f from src, streaming the raw
// payload to dst. It returns the total number of bytes written to dst.
func Decompress(f format.Format, dst io.Writer, src []byte) (int64, error) {
	c, err := codec.ForFormat(f)
	if err != nil {
		return 0, err
	}

	return c.Decode(dst, src)
}
