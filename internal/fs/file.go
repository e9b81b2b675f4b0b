package fs

import (
	"errors"
	"io"
	"os"
)

type File interface {
	io.ReadCloser
	io.ReaderAt
	Stat() (os.FileInfo, error)
}

// ReadHead reads at most n bytes from the beginning of f. Files shorter than
// n are returned entirely.
func ReadHead(f io.ReaderAt, n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := f.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}
