package codec

// zstdChunkSize is the transfer unit for both directions.
const zstdChunkSize = 256 * 1024

// ZstdCodec handles the Zstandard frame format, used by newer boot payloads.
//
// Two backends share this type: cgo builds stream through the libzstd
// bindings, pure-Go builds through the klauspost implementation. Both emit
// standard zstd frames and read each other's output, so the build flavor
// never changes the container contract. The Encode/Decode methods live in
// zstd_cgo.go and zstd_pure.go.
type ZstdCodec struct {
	chunkSize int
}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a zstd codec.
func NewZstdCodec(opts ...Option) ZstdCodec {
	return ZstdCodec{chunkSize: newConfig(zstdChunkSize, opts...).chunkSize}
}
