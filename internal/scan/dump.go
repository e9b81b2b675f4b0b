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
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ostafen/sniff/internal/logger"
	"github.com/ostafen/sniff/pkg/dfxml"
	"github.com/ostafen/sniff/pkg/mimetype"
	osutils "github.com/ostafen/sniff/pkg/util/os"
)

type DumpOptions struct {
	OutDir string
	// Link creates hard links instead of copies, falling back to a copy
	// when the destination is on another device.
	Link bool
}

// DumpFiles places every file of report under
// <OutDir>/<kind>/<extension>/<name>. It returns the number of files placed.
// Files which cannot be placed are logged and skipped.
func DumpFiles(report *dfxml.Report, opts DumpOptions, log *logger.Logger) (int, error) {
	if _, err := osutils.EnsureDir(opts.OutDir, false); err != nil {
		return 0, err
	}

	dumped := 0
	for _, o := range report.Objects {
		src := o.Filename
		if !filepath.IsAbs(filepath.FromSlash(src)) {
			src = filepath.Join(report.Source.Directory, filepath.FromSlash(src))
		}

		if _, err := os.Stat(src); err != nil {
			log.Errorf("unable to dump file %s: %s", o.Filename, err)
			continue
		}

		dir := filepath.Join(opts.OutDir, KindDirName(o.Kind), extDir(o.Extension))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return dumped, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}

		dst := osutils.UniquePath(filepath.Join(dir, path.Base(o.Filename)))
		if err := place(dst, src, opts.Link); err != nil {
			log.Errorf("unable to dump file %s: %s", o.Filename, err)
			continue
		}
		log.Debugf("%s -> %s", src, dst)
		dumped++
	}
	return dumped, nil
}

func place(dst, src string, link bool) error {
	if link {
		if err := os.Link(src, dst); err == nil {
			return nil
		}
	}
	return osutils.CopyTo(dst, src)
}

// KindDirName returns the directory name for files of the given kind, as
// rendered in reports. It is named after the first category.
func KindDirName(kind string) string {
	first, _, _ := strings.Cut(kind, "|")
	k, ok := mimetype.ParseKind(first)
	if !ok || k == mimetype.Unknown {
		return "unknown"
	}
	return strings.ToLower(k.String())
}

func extDir(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return "noext"
	}
	return ext
}
