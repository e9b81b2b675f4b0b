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
package format

import (
	"bytes"
	"strconv"
)

const (
	TarBlockSize = 512

	tarNameSize      = 100
	tarChecksumStart = 148
	tarChecksumEnd   = 156
)

var gpkgMarker = []byte("/gpkg-1\x00")

// IsTAR validates the first header block of a tar archive by recomputing its
// checksum. Both the unsigned and the historical signed sums are accepted.
func IsTAR(buf []byte) bool {
	if len(buf) < TarBlockSize {
		return false
	}

	hdr := buf[:TarBlockSize]
	if bytes.Contains(hdr[:tarNameSize], gpkgMarker) {
		return false
	}

	recorded, ok := parseOctal(hdr[tarChecksumStart:tarChecksumEnd])
	if !ok {
		return false
	}
	unsigned, signed := tarChecksum(hdr)
	return recorded == unsigned || recorded == signed
}

func parseOctal(field []byte) (int64, bool) {
	field = bytes.TrimLeft(field, " \x00")
	if i := bytes.IndexAny(field, " \x00"); i >= 0 {
		field = field[:i]
	}
	if len(field) == 0 {
		return 0, false
	}

	v, err := strconv.ParseInt(string(field), 8, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// tarChecksum sums the header bytes, counting the checksum field as spaces.
func tarChecksum(hdr []byte) (unsigned, signed int64) {
	for i, b := range hdr {
		if i >= tarChecksumStart && i < tarChecksumEnd {
			b = ' '
		}
		unsigned += int64(b)
		signed += int64(int8(b))
	}
	return unsigned, signed
}
