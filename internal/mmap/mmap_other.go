//go:build !unix

package mmap

import (
	"io"
	"os"
)

func pageSize() int {
	return os.Getpagesize()
}

// mmap reads the region into memory on platforms without a mapping
// implementation.
func mmap(f *os.File, offset int64, length int) ([]byte, error) {
	data := make([]byte, length)
	if _, err := f.ReadAt(data, offset); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}

func munmap([]byte) error {
	return nil
}
