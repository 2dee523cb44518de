package codec

import (
	"bytes"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

// Both zstd backends emit standard frames; a multi-chunk payload must come
// back bit-identical whichever one this build uses.
func TestZstdLargePayload(t *testing.T) {
	input := testPayload(3 * zstdChunkSize)

	c := NewZstdCodec()

	var packed bytes.Buffer
	written, err := c.Encode(&packed, input)
	require.NoError(t, err)
	require.Equal(t, int64(packed.Len()), written)
	require.Less(t, packed.Len(), len(input))

	var restored bytes.Buffer
	restoredLen, err := c.Decode(&restored, packed.Bytes())
	require.NoError(t, err)
	require.Equal(t, int64(len(input)), restoredLen)
	require.Equal(t, xxhash.Sum64(input), xxhash.Sum64(restored.Bytes()))
}

func TestZstdDecodeGarbage(t *testing.T) {
	var restored bytes.Buffer
	_, err := NewZstdCodec().Decode(&restored, []byte("not a zstd frame"))
	require.Error(t, err)
}
