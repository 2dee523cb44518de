// Package codec provides the streaming compression and decompression drivers
// behind press.Compress and press.Decompress.
//
// # Overview
//
// Each supported container format — gzip, XZ, standalone LZMA, bzip2, both
// LZ4 containers and zstd — is one driver implementing the same two-method
// contract:
//
//	type Codec interface {
//	    Encode(dst io.Writer, src []byte) (int64, error)
//	    Decode(dst io.Writer, src []byte) (int64, error)
//	}
//
// The input is always a fully resident byte slice (boot-image payloads are
// mapped into memory before transformation); the output is streamed to the
// destination writer in bounded chunks and the exact byte count delivered to
// the writer is returned. ForFormat maps a format tag to its driver.
//
// # Semantics
//
// All drivers share the same call contract:
//
//   - One call, one backend: codec-library state is created when a call is
//     entered and released on every exit path.
//   - All or nothing: any backend or sink failure aborts the call with a
//     terminal error; partial output is never usable.
//   - Short writes are retried; a writer that accepts nothing without
//     erroring fails the call with ErrSinkWrite.
//
// The LZMA family is intentionally asymmetric: NewXzCodec and NewLzmaCodec
// emit different containers but decode through one auto-detecting path, the
// way the xz tooling itself behaves.
//
// The legacy LZ4 container has no library support anywhere; Lz4LegacyCodec
// builds its framing directly on the lz4 block primitives, including the
// format's quirk that the trailing size footer is detected, not declared.
package codec
