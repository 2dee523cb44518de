// Package pool provides reusable working buffers for the codec drivers.
//
// Chunk buffers range from a few KiB (lzma transfer buffers) up to 8 MiB
// (legacy LZ4 blocks); pooling them keeps repeated transform calls from
// re-allocating the large ones.
package pool

import "sync"

var bufferPool = sync.Pool{
	New: func() any { return new([]byte) },
}

// GetBuffer retrieves a byte slice of exactly size bytes from the pool.
//
// If the pooled slice has insufficient capacity, a new slice is allocated.
// The buffer is exclusively owned by the caller until the returned cleanup
// function is called (typically with defer) to put it back.
//
// Example:
//
//	buf, release := pool.GetBuffer(chunkSize)
//	defer release()
//	// Use buf...
func GetBuffer(size int) ([]byte, func()) {
	ptr, _ := bufferPool.Get().(*[]byte)
	buf := *ptr

	if cap(buf) < size {
		buf = make([]byte, size)
		*ptr = buf
	} else {
		buf = buf[:size]
	}

	return buf, func() { bufferPool.Put(ptr) }
}
