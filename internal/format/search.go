package format

import (
	"bytes"
)

// SeekAt searches for sig starting within the next n bytes from the current
// reader position and, when found, positions the reader right at the beginning of
// the signature. The reader does not move when the signature is missing.
func SeekAt(r *Reader, sig []byte, n int) bool {
	window := r.buf[r.off:]
	if limit := n + len(sig) - 1; n >= 0 && limit < len(window) {
		window = window[:limit]
	}

	idx := bytes.Index(window, sig)
	if idx < 0 {
		return false
	}
	r.off += idx
	return true
}

// IndexWithin returns the index of sig inside buf[from:to], clamped to the
// bounds of buf, or -1.
func IndexWithin(buf []byte, sig []byte, from, to int) int {
	to = min(to, len(buf))
	if from < 0 || from >= to {
		return -1
	}
	idx := bytes.Index(buf[from:to], sig)
	if idx < 0 {
		return -1
	}
	return from + idx
}
