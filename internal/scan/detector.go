// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package scan

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/ostafen/sniff/internal/fs"
	"github.com/ostafen/sniff/pkg/mimetype"
	"github.com/patrickmn/go-cache"
)

const (
	cacheExpiration = 10 * time.Minute
	cacheCleanup    = time.Minute
)

// Detector detects the format of file heads and memoizes the result by the
// xxhash digest of the head. Detection only depends on the head, so files
// sharing it share the result.
type Detector struct {
	readLimit  int
	maxEntries int
	cache      *cache.Cache

	hits atomic.Int64
}

// NewDetector returns a detector inspecting readLimit bytes per file and
// caching up to cacheSize results. A cacheSize of zero disables caching.
func NewDetector(readLimit, cacheSize int) *Detector {
	d := &Detector{
		readLimit:  readLimit,
		maxEntries: cacheSize,
	}
	if cacheSize > 0 {
		d.cache = cache.New(cacheExpiration, cacheCleanup)
	}
	return d
}

func (d *Detector) ReadLimit() int {
	return d.readLimit
}

// Hits returns the number of detections served from the cache.
func (d *Detector) Hits() int64 {
	return d.hits.Load()
}

// Detect returns the format of head along with its digest.
func (d *Detector) Detect(head []byte) (*mimetype.MIME, uint64) {
	if len(head) > d.readLimit {
		head = head[:d.readLimit]
	}
	sum := xxhash.Sum64(head)

	if d.cache == nil {
		return mimetype.Detect(head, d.readLimit), sum
	}

	key := fmt.Sprintf("%016x-%d", sum, len(head))
	if v, found := d.cache.Get(key); found {
		d.hits.Add(1)
		return v.(*mimetype.MIME), sum
	}

	m := mimetype.Detect(head, d.readLimit)
	if d.cache.ItemCount() < d.maxEntries {
		d.cache.SetDefault(key, m)
	}
	return m, sum
}

// DetectFile reads the head of the file at path and detects its format.
func (d *Detector) DetectFile(path string) (*mimetype.MIME, uint64, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	head, err := fs.ReadHead(f, d.readLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %q: %w", path, err)
	}

	m, sum := d.Detect(head)
	return m, sum, nil
}
