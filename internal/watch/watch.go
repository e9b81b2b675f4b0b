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
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/ostafen/sniff/internal/scan"
	"github.com/ostafen/sniff/pkg/mimetype"
)

// Event reports the format detected for a created or modified file.
type Event struct {
	Path   string
	Rel    string
	Op     fsnotify.Op
	MIME   *mimetype.MIME
	Digest uint64
}

// Watcher detects the format of files as they are created or written below
// a directory tree. An event is only emitted when the detected format of a
// file differs from the last one reported for it.
type Watcher struct {
	root     string
	watcher  *fsnotify.Watcher
	filter   *scan.Filter
	detector *scan.Detector
	log      *slog.Logger

	last map[string]*mimetype.MIME
}

// New starts watching dir and all of its subdirectories not excluded by
// filter.
func New(dir string, filter *scan.Filter, detector *scan.Detector, log *slog.Logger) (*Watcher, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		watcher:  fw,
		filter:   filter,
		detector: detector,
		log:      log,
		last:     make(map[string]*mimetype.MIME),
	}

	if err := w.addTree(root, nil); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches dir and its subdirectories. Files already present are
// passed to onFile, if not nil.
func (w *Watcher) addTree(dir string, onFile func(path string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.log.Warn("unable to access path", "path", path, "err", err)
			return nil
		}

		if !d.IsDir() {
			if onFile != nil && d.Type().IsRegular() {
				onFile(path)
			}
			return nil
		}

		if path != w.root && w.filter.SkipDir(w.rel(path)) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %q: %w", path, err)
		}
		w.log.Debug("watching directory", "path", path)
		return nil
	})
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// Run processes file system events until ctx is done or the watcher is
// closed. fn is called from the goroutine running Run.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event, fn)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.log.Warn("events were dropped", "err", err)
				continue
			}
			w.log.Error("watch error", "err", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, fn func(Event)) {
	path := event.Name

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		delete(w.last, path)
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Lstat(path)
	if err != nil {
		// removed in the meantime
		return
	}

	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			err := w.addTree(path, func(p string) {
				w.detect(p, fsnotify.Create, fn)
			})
			if err != nil {
				w.log.Error("unable to watch directory", "path", path, "err", err)
			}
		}
		return
	}
	if info.Mode().IsRegular() {
		w.detect(path, event.Op, fn)
	}
}

func (w *Watcher) detect(path string, op fsnotify.Op, fn func(Event)) {
	rel := w.rel(path)
	if !w.filter.Match(rel) {
		return
	}

	m, digest, err := w.detector.DetectFile(path)
	if err != nil {
		w.log.Warn("unable to inspect file", "path", path, "err", err)
		return
	}
	if w.last[path] == m {
		return
	}
	w.last[path] = m

	w.log.Debug("detected", "path", rel, "mime", m.MIME(), "op", op.String())
	fn(Event{
		Path:   path,
		Rel:    rel,
		Op:     op,
		MIME:   m,
		Digest: digest,
	})
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
