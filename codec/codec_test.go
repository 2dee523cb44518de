package codec

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/bootpack/press/format"
	"github.com/stretchr/testify/require"
)

// recordSink captures everything written to it along with the size of each
// individual write, for byte-count accuracy assertions.
type recordSink struct {
	buf    bytes.Buffer
	writes []int
}

func (s *recordSink) Write(p []byte) (int, error) {
	s.writes = append(s.writes, len(p))
	return s.buf.Write(p)
}

func (s *recordSink) total() int64 {
	var sum int64
	for _, n := range s.writes {
		sum += int64(n)
	}

	return sum
}

// dribbleSink accepts at most max bytes per call, exercising the short-write
// retry loop.
type dribbleSink struct {
	buf bytes.Buffer
	max int
}

func (s *dribbleSink) Write(p []byte) (int, error) {
	if len(p) > s.max {
		p = p[:s.max]
	}

	return s.buf.Write(p)
}

// failSink fails with a permanent error once failAt bytes were accepted.
type failSink struct {
	failAt int
	n      int
}

var errSinkBroken = errors.New("sink broken")

func (s *failSink) Write(p []byte) (int, error) {
	if s.n+len(p) > s.failAt {
		return 0, errSinkBroken
	}
	s.n += len(p)

	return len(p), nil
}

// testPayload produces deterministic, moderately compressible data.
func testPayload(n int) []byte {
	rng := rand.New(rand.NewSource(42))
	buf := make([]byte, n)
	for i := range buf {
		// Runs of repeated bytes interleaved with noise.
		if i%16 < 12 {
			buf[i] = byte(i / 64)
		} else {
			buf[i] = byte(rng.Intn(256))
		}
	}

	return buf
}

var allFormats = []format.Format{
	format.Gzip,
	format.Xz,
	format.Lzma,
	format.Bzip2,
	format.Lz4,
	format.Lz4Legacy,
	format.Zstd,
}

// testCodecs returns every driver configured with a small chunk size so that
// multi-chunk loops run on small inputs.
func testCodecs(chunkSize int) map[string]Codec {
	opts := []Option{WithChunkSize(chunkSize)}

	return map[string]Codec{
		"gzip":       NewGzipCodec(opts...),
		"xz":         NewXzCodec(opts...),
		"lzma":       NewLzmaCodec(opts...),
		"bzip2":      NewBzip2Codec(opts...),
		"lz4":        NewLz4Codec(opts...),
		"lz4_legacy": NewLz4LegacyCodec(opts...),
		"zstd":       NewZstdCodec(opts...),
	}
}

func TestForFormat(t *testing.T) {
	for _, f := range allFormats {
		c, err := ForFormat(f)
		require.NoError(t, err, "format %s", f)
		require.NotNil(t, c)
	}
}

func TestForFormat_Unknown(t *testing.T) {
	_, err := ForFormat(format.Format(0xFF))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRoundTrip(t *testing.T) {
	const chunkSize = 4096

	sizes := []int{
		0,
		1,
		100,
		chunkSize - 1,
		chunkSize,
		3*chunkSize + 17, // multiple full chunks plus a short tail
	}

	for name, c := range testCodecs(chunkSize) {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s/%d", name, size), func(t *testing.T) {
				input := testPayload(size)

				var packed bytes.Buffer
				written, err := c.Encode(&packed, input)
				require.NoError(t, err)
				require.Equal(t, int64(packed.Len()), written)

				var restored bytes.Buffer
				restoredLen, err := c.Decode(&restored, packed.Bytes())
				require.NoError(t, err)
				require.Equal(t, int64(size), restoredLen)
				require.Equal(t, input, restored.Bytes()[:len(input)])
				require.Equal(t, size, restored.Len())
			})
		}
	}
}

func TestByteCountAccuracy(t *testing.T) {
	input := testPayload(3*4096 + 5)

	for name, c := range testCodecs(4096) {
		t.Run(name, func(t *testing.T) {
			sink := &recordSink{}
			written, err := c.Encode(sink, input)
			require.NoError(t, err)
			require.Equal(t, sink.total(), written)
			require.Equal(t, int64(sink.buf.Len()), written)

			sink2 := &recordSink{}
			restoredLen, err := c.Decode(sink2, sink.buf.Bytes())
			require.NoError(t, err)
			require.Equal(t, sink2.total(), restoredLen)
		})
	}
}

// A sink that accepts only a few bytes per call must not change results:
// chunk writes are retried until fully delivered.
func TestShortWritingSink(t *testing.T) {
	input := testPayload(2 * 4096)

	for name, c := range testCodecs(4096) {
		t.Run(name, func(t *testing.T) {
			sink := &dribbleSink{max: 7}
			written, err := c.Encode(sink, input)
			require.NoError(t, err)
			require.Equal(t, int64(sink.buf.Len()), written)

			var restored bytes.Buffer
			_, err = c.Decode(&restored, sink.buf.Bytes())
			require.NoError(t, err)
			require.Equal(t, input, restored.Bytes())
		})
	}
}

// A sink failure mid-stream must surface as an error, never as a truncated
// success count.
func TestFailingSink(t *testing.T) {
	input := testPayload(64 * 1024)

	for name, c := range testCodecs(4096) {
		t.Run(name+"/encode", func(t *testing.T) {
			_, err := c.Encode(&failSink{failAt: 16}, input)
			require.Error(t, err)
		})
	}

	// Same on decode: build valid archives first, then fail the sink.
	for name, c := range testCodecs(4096) {
		t.Run(name+"/decode", func(t *testing.T) {
			var packed bytes.Buffer
			_, err := c.Encode(&packed, input)
			require.NoError(t, err)

			_, err = c.Decode(&failSink{failAt: 16}, packed.Bytes())
			require.Error(t, err)
		})
	}
}

// Drivers that hold a releasable backend handle must release it exactly
// once per call, on success and when the sink breaks mid-stream.
func TestBackendReleasedOnce(t *testing.T) {
	// Formats whose encode path creates a backend handle. The LZMA-family
	// and LZ4 frame readers are plain structs with nothing to release, and
	// the legacy driver works on block primitives, so decode is pinned only
	// where a handle exists.
	encodeHandles := []string{"gzip", "xz", "lzma", "bzip2", "lz4", "zstd"}
	decodeHandles := []string{"gzip", "bzip2", "zstd"}

	codecs := testCodecs(4096)
	input := testPayload(64 * 1024)

	countReleases := func(t *testing.T, f func()) int {
		t.Helper()
		releases := 0
		releaseObserver = func() { releases++ }
		defer func() { releaseObserver = nil }()
		f()

		return releases
	}

	for _, name := range encodeHandles {
		c := codecs[name]
		t.Run(name+"/encode", func(t *testing.T) {
			releases := countReleases(t, func() {
				var packed bytes.Buffer
				_, err := c.Encode(&packed, input)
				require.NoError(t, err)
			})
			require.Equal(t, 1, releases)
		})
		t.Run(name+"/encode broken sink", func(t *testing.T) {
			releases := countReleases(t, func() {
				_, err := c.Encode(&failSink{failAt: 16}, input)
				require.Error(t, err)
			})
			require.Equal(t, 1, releases)
		})
	}

	for _, name := range decodeHandles {
		c := codecs[name]
		var packed bytes.Buffer
		_, err := c.Encode(&packed, input)
		require.NoError(t, err)

		t.Run(name+"/decode", func(t *testing.T) {
			releases := countReleases(t, func() {
				var restored bytes.Buffer
				_, err := c.Decode(&restored, packed.Bytes())
				require.NoError(t, err)
			})
			require.Equal(t, 1, releases)
		})
		t.Run(name+"/decode broken sink", func(t *testing.T) {
			releases := countReleases(t, func() {
				_, err := c.Decode(&failSink{failAt: 16}, packed.Bytes())
				require.Error(t, err)
			})
			require.Equal(t, 1, releases)
		})
	}
}

// An input whose length is an exact chunk multiple must not grow a spurious
// empty trailing chunk or lose its final bytes.
func TestChunkBoundary(t *testing.T) {
	const chunkSize = 4096

	for _, size := range []int{chunkSize, 2 * chunkSize, 3 * chunkSize} {
		input := testPayload(size)

		for name, c := range testCodecs(chunkSize) {
			t.Run(fmt.Sprintf("%s/%d", name, size), func(t *testing.T) {
				var packed bytes.Buffer
				_, err := c.Encode(&packed, input)
				require.NoError(t, err)

				var restored bytes.Buffer
				restoredLen, err := c.Decode(&restored, packed.Bytes())
				require.NoError(t, err)
				require.Equal(t, int64(size), restoredLen)
				require.Equal(t, input, restored.Bytes())
			})
		}
	}
}

// Encoded streams must carry their own magic so callers can round-trip
// through format.Detect.
func TestEncodedStreamsDetectable(t *testing.T) {
	input := testPayload(1024)

	for _, f := range allFormats {
		t.Run(f.String(), func(t *testing.T) {
			c, err := ForFormat(f)
			require.NoError(t, err)

			var packed bytes.Buffer
			_, err = c.Encode(&packed, input)
			require.NoError(t, err)

			detected, ok := format.Detect(packed.Bytes())
			require.True(t, ok)
			require.Equal(t, f, detected)
		})
	}
}
