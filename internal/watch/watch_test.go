package watch_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ostafen/sniff/internal/scan"
	"github.com/ostafen/sniff/internal/watch"
	"github.com/stretchr/testify/require"
)

var pngData = append([]byte("\x89PNG\r\n\x1A\n\x00\x00\x00\x0DIHDR"), make([]byte, 48)...)

func startWatcher(t *testing.T, dir string, exclude ...string) <-chan watch.Event {
	filter, err := scan.NewFilter(nil, exclude)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := watch.New(dir, filter, scan.NewDetector(3072, 0), log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan watch.Event, 64)
	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx, func(e watch.Event) {
			events <- e
		})
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
		require.NoError(t, w.Close())
	})
	return events
}

// waitFor returns the first event reporting mime for a file named rel.
func waitFor(t *testing.T, events <-chan watch.Event, rel, mime string) watch.Event {
	timeout := time.After(10 * time.Second)
	for {
		select {
		case e := <-events:
			if e.Rel == rel && e.MIME.MIME() == mime {
				return e
			}
		case <-timeout:
			t.Fatalf("no %s event for %s", mime, rel)
		}
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	events := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), pngData, 0644))
	e := waitFor(t, events, "image.png", "image/png")
	require.Equal(t, filepath.Join(dir, "image.png"), e.Path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes"), []byte("hello world\n"), 0644))
	waitFor(t, events, "notes", "text/plain; charset=utf-8")
}

func TestWatcherNewDirectory(t *testing.T) {
	dir := t.TempDir()
	events := startWatcher(t, dir)

	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "doc.pdf"), []byte("%PDF-1.4\n%%EOF\n"), 0644))

	waitFor(t, events, "a/b/doc.pdf", "application/pdf")
}

func TestWatcherExclude(t *testing.T) {
	dir := t.TempDir()
	events := startWatcher(t, dir, "*.tmp")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.tmp"), pngData, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.png"), pngData, 0644))

	e := waitFor(t, events, "keep.png", "image/png")
	require.Equal(t, "keep.png", e.Rel)

	select {
	case e := <-events:
		require.NotEqual(t, "skip.tmp", e.Rel)
	default:
	}
}

func TestNewMissingDir(t *testing.T) {
	filter, err := scan.NewFilter(nil, nil)
	require.NoError(t, err)

	_, err = watch.New(filepath.Join(t.TempDir(), "missing"), filter, scan.NewDetector(3072, 0),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.ErrorIs(t, err, os.ErrNotExist)
}
