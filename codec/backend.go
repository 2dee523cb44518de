package codec

import "io"

// releaseObserver is notified every time a driver releases a backend
// handle. It is nil outside tests.
var releaseObserver func()

// closeBackend releases a backend handle and reports the close error.
// Drivers route every handle through it, or through releaseBackend, exactly
// once per call regardless of the path taken.
func closeBackend(c io.Closer) error {
	if releaseObserver != nil {
		releaseObserver()
	}
	return c.Close()
}

// releaseBackend is closeBackend for handles whose release reports nothing.
func releaseBackend(release func()) {
	if releaseObserver != nil {
		releaseObserver()
	}
	release()
}
