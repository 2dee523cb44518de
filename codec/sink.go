package codec

import (
	"io"

	"github.com/bootpack/press/internal/pool"
)

// countWriter wraps the destination sink. It retries short writes until the
// whole chunk is accepted and accumulates the number of bytes the sink took,
// which is what Encode and Decode ultimately return.
type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := cw.w.Write(p[written:])
		if n > 0 {
			written += n
			cw.n += int64(n)
		}
		if err != nil {
			return written, err
		}
		if n <= 0 {
			return written, ErrSinkWrite
		}
	}

	return written, nil
}

// feedChunks pushes src through w in chunkSize slices. The final slice may be
// shorter; an input whose length is an exact multiple of chunkSize produces
// no trailing empty write.
func feedChunks(w io.Writer, src []byte, chunkSize int) error {
	for pos := 0; pos < len(src); {
		end := pos + chunkSize
		if end > len(src) {
			end = len(src)
		}
		if _, err := w.Write(src[pos:end]); err != nil {
			return err
		}
		pos = end
	}

	return nil
}

// drainChunks copies everything r produces into dst through a pooled buffer
// of chunkSize bytes.
func drainChunks(dst io.Writer, r io.Reader, chunkSize int) error {
	buf, release := pool.GetBuffer(chunkSize)
	defer release()

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
