package codec

import "errors"

// Sentinel errors for encode and decode calls. Every error returned by this
// package is terminal for the call: no retries are attempted and no partial
// output is usable.
var (
	// ErrUnsupportedFormat is returned when no codec exists for a format tag.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrBackendInit is returned when the underlying codec library fails to
	// set up its stream or context.
	ErrBackendInit = errors.New("codec backend init")
	// ErrFrameDescriptor is returned when an LZ4 frame header is malformed or
	// declares a block size class the format does not define.
	ErrFrameDescriptor = errors.New("invalid lz4 frame descriptor")
	// ErrBlockCorrupt is returned when a legacy LZ4 block fails to decompress.
	ErrBlockCorrupt = errors.New("corrupt lz4 block")
	// ErrSinkWrite is returned when the destination writer accepts no bytes
	// without reporting an error of its own.
	ErrSinkWrite = errors.New("sink made no progress")
)
