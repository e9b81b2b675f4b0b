//go:build !windows
// +build !windows

package fs

import "os"

func Open(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
