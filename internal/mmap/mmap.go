package mmap

import (
	"errors"
	"fmt"
	"os"
)

var ErrEmptyFile = errors.New("file is empty, cannot mmap")

// MmapFile represents a memory-mapped file region.
type MmapFile struct {
	Data         []byte   // The memory-mapped byte slice
	File         *os.File // The underlying file, if owned by the mapping
	FileSize     int      // Total size of the underlying file
	MappedOffset int      // The starting offset of the mapped region within the file
	MappedLength int      // The length of the mapped region
}

func NewMmapFile(filePath string) (*MmapFile, error) {
	return NewMmapFileRegion(filePath, 0, 0)
}

// NewMmapFileRegion maps length bytes of the file at filePath, starting at
// offset. The offset must be page-aligned. If length is 0, the mapping
// extends from offset to the end of the file.
// The returned mapping owns the file, which is closed by Close.
func NewMmapFileRegion(filePath string, offset, length int) (*MmapFile, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}

	mf, err := MapRegion(f, offset, length)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to map %q: %w", filePath, err)
	}
	mf.File = f
	return mf, nil
}

// MapHead maps at most n bytes from the beginning of f. Files shorter than n
// are mapped entirely. The caller keeps ownership of f.
func MapHead(f *os.File, n int) (*MmapFile, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info for %q: %w", f.Name(), err)
	}
	if fi.Size() == 0 {
		return nil, ErrEmptyFile
	}
	return MapRegion(f, 0, int(min(fi.Size(), int64(n))))
}

// MapRegion maps length bytes of f starting at offset. The caller keeps
// ownership of f.
func MapRegion(f *os.File, offset, length int) (*MmapFile, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info for %q: %w", f.Name(), err)
	}
	fileSize := int(fi.Size())

	if fileSize == 0 {
		return nil, ErrEmptyFile
	}
	if offset < 0 {
		return nil, fmt.Errorf("offset cannot be negative: %d", offset)
	}
	if offset >= fileSize {
		return nil, fmt.Errorf("offset %d is beyond file size %d", offset, fileSize)
	}

	actualMappedLength := length
	if length == 0 {
		actualMappedLength = fileSize - offset
	}

	if offset+actualMappedLength > fileSize {
		return nil, fmt.Errorf("requested mapping (offset %d + length %d) extends beyond file size %d", offset, actualMappedLength, fileSize)
	}
	if actualMappedLength <= 0 {
		return nil, fmt.Errorf("calculated mapped length is zero or negative: %d", actualMappedLength)
	}

	if pageSize := pageSize(); offset%pageSize != 0 {
		return nil, fmt.Errorf("offset %d is not page-aligned (page size: %d)", offset, pageSize)
	}

	data, err := mmap(f, int64(offset), actualMappedLength)
	if err != nil {
		return nil, fmt.Errorf("failed to mmap at offset %d with length %d: %w", offset, actualMappedLength, err)
	}

	return &MmapFile{
		Data:         data,
		FileSize:     fileSize,
		MappedOffset: offset,
		MappedLength: actualMappedLength,
	}, nil
}

// Close unmaps the memory region and closes the underlying file, if owned.
func (mr *MmapFile) Close() error {
	var err error
	if mr.Data != nil {
		err = munmap(mr.Data)
		if err != nil {
			return fmt.Errorf("failed to munmap: %w", err)
		}
		mr.Data = nil
	}

	if mr.File != nil {
		if closeErr := mr.File.Close(); closeErr != nil {
			return fmt.Errorf("failed to close file: %w", closeErr)
		}
		mr.File = nil
	}
	return nil
}
