package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetBuffer(t *testing.T) {
	t.Run("exact length", func(t *testing.T) {
		buf, release := GetBuffer(4096)
		defer release()

		require.Len(t, buf, 4096)
	})

	t.Run("reuse after release", func(t *testing.T) {
		buf, release := GetBuffer(1 << 20)
		buf[0] = 0xAB
		release()

		again, release2 := GetBuffer(512)
		defer release2()

		require.Len(t, again, 512)
	})

	t.Run("grows for larger request", func(t *testing.T) {
		small, release := GetBuffer(16)
		release()
		_ = small

		big, release2 := GetBuffer(8 << 20)
		defer release2()

		require.Len(t, big, 8<<20)
	})

	t.Run("zero size", func(t *testing.T) {
		buf, release := GetBuffer(0)
		defer release()

		require.Empty(t, buf)
	})
}
