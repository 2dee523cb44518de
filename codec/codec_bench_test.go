package codec

import (
	"bytes"
	"fmt"
	"io"
	"testing"
)

func BenchmarkEncode(b *testing.B) {
	sizes := []int{64 << 10, 1 << 20}

	for name, c := range testCodecs(0) {
		for _, size := range sizes {
			input := testPayload(size)

			b.Run(fmt.Sprintf("%s/%dKB", name, size/1024), func(b *testing.B) {
				b.SetBytes(int64(size))
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := c.Encode(io.Discard, input); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	sizes := []int{64 << 10, 1 << 20}

	for name, c := range testCodecs(0) {
		for _, size := range sizes {
			input := testPayload(size)
			var packed bytes.Buffer
			if _, err := c.Encode(&packed, input); err != nil {
				b.Fatal(err)
			}

			b.Run(fmt.Sprintf("%s/%dKB", name, size/1024), func(b *testing.B) {
				b.SetBytes(int64(size))
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := c.Decode(io.Discard, packed.Bytes()); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
