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
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ostafen/sniff/internal/env"
	"github.com/ostafen/sniff/internal/logger"
	"github.com/ostafen/sniff/pkg/dfxml"
	"github.com/ostafen/sniff/pkg/mimetype"
	"github.com/ostafen/sniff/pkg/pbar"
	fmtutil "github.com/ostafen/sniff/pkg/util/format"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Dir            string
	ReportFile     string
	ReadLimit      int
	Workers        int
	CacheSize      int
	Include        []string
	Exclude        []string
	FollowSymlinks bool

	// Progress receives the progress bar, which is only drawn on terminals.
	Progress io.Writer
	// Console receives user facing messages.
	Console *logger.Logger
	// Log receives one record per inspected file.
	Log *slog.Logger
}

// Result is the outcome of the inspection of a single file.
type Result struct {
	Path   string
	Rel    string
	Size   int64
	MIME   *mimetype.MIME
	Digest uint64
	Err    error
}

type Summary struct {
	ReportFile string
	Files      int
	Failed     int
	Bytes      int64
	CacheHits  int64
	Duration   time.Duration
	ByMIME     map[string]int
}

type entry struct {
	path string
	rel  string
	size int64
}

// Scan detects the format of every selected file below opts.Dir using a
// pool of workers and writes a DFXML report. Files which cannot be read are
// logged and counted, but do not stop the scan.
func Scan(ctx context.Context, opts Options) (*Summary, error) {
	opts = withDefaults(opts)

	dir := absPath(opts.Dir)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	filter, err := NewFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	opts.Console.Info("Starting scanning operation...")
	opts.Console.Infof("Source: \t%s", dir)
	opts.Console.Infof("Workers: \t%d", opts.Workers)
	opts.Console.Infof("Read limit: \t%s", fmtutil.FormatBytes(int64(opts.ReadLimit)))

	entries, err := listEntries(ctx, dir, filter, opts.FollowSymlinks, opts.Log)
	if err != nil {
		return nil, err
	}
	opts.Console.Infof("Files to inspect: \t%d", len(entries))

	reportFile := opts.ReportFile
	if reportFile == "" {
		reportFile = fmt.Sprintf("report_%s.xml", GenSessionID())
	}

	out, err := os.Create(reportFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file %q: %w", reportFile, err)
	}
	defer out.Close()

	w := dfxml.NewDFXMLWriter(out)
	err = w.WriteHeader(dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: dfxml.GetExecEnv(),
		},
		Source: dfxml.Source{
			Directory: dir,
			ReadLimit: opts.ReadLimit,
			Include:   strings.Join(opts.Include, ","),
			Exclude:   strings.Join(opts.Exclude, ","),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}

	start := time.Now()
	detector := NewDetector(opts.ReadLimit, opts.CacheSize)
	bar := pbar.NewProgressBarState(opts.Progress, len(entries))

	summary := &Summary{
		ReportFile: absPath(reportFile),
		ByMIME:     make(map[string]int),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var writeErr error
	err = inspectAll(ctx, entries, detector, opts.Workers, func(res Result) {
		bar.Add(res.Size)

		if res.Err != nil {
			summary.Failed++
			opts.Log.Error("unable to inspect file", "path", res.Path, "err", res.Err)
			return
		}

		summary.Files++
		summary.Bytes += res.Size
		summary.ByMIME[res.MIME.MIME()]++

		opts.Log.Debug("detected",
			"path", res.Rel,
			"mime", res.MIME.MIME(),
			"kind", res.MIME.Kind().String(),
			"digest", fmt.Sprintf("%016x", res.Digest),
		)

		if writeErr != nil {
			return
		}
		writeErr = w.WriteFileObject(fileObject(res))
		if writeErr != nil {
			cancel()
		}
	})
	bar.Finish()

	if writeErr != nil {
		return nil, fmt.Errorf("failed to write report: %w", writeErr)
	}
	if err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close report file %q: %w", reportFile, err)
	}

	summary.CacheHits = detector.Hits()
	summary.Duration = time.Since(start)

	printSummary(opts.Console, summary)
	return summary, nil
}

func withDefaults(opts Options) Options {
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = mimetype.ReadLimit
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	if opts.Console == nil {
		opts.Console = logger.Discard()
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return opts
}

// inspectAll feeds entries to a bounded pool of workers. Results are passed
// to collect from the calling goroutine, in completion order.
func inspectAll(ctx context.Context, entries []entry, d *Detector, workers int, collect func(Result)) error {
	g, gctx := errgroup.WithContext(ctx)

	jobs := make(chan entry)
	results := make(chan Result, workers)

	g.Go(func() error {
		defer close(jobs)

		for _, e := range entries {
			select {
			case jobs <- e:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for e := range jobs {
				select {
				case results <- inspect(d, e):
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(results)
	}()

	for res := range results {
		collect(res)
	}
	return <-done
}

func inspect(d *Detector, e entry) Result {
	res := Result{Path: e.path, Rel: e.rel, Size: e.size}
	res.MIME, res.Digest, res.Err = d.DetectFile(e.path)
	return res
}

func fileObject(res Result) dfxml.FileObject {
	return dfxml.FileObject{
		Filename:   res.Rel,
		FileSize:   uint64(res.Size),
		MIME:       res.MIME.MIME(),
		Kind:       res.MIME.Kind().String(),
		Extension:  res.MIME.Extension(),
		HashDigest: dfxml.XXH64Digest(res.Digest),
	}
}

// listEntries walks dir and returns the regular files selected by filter.
// Symbolic links to regular files are followed if follow is set; links to
// directories are never descended.
func listEntries(ctx context.Context, dir string, filter *Filter, follow bool, log *slog.Logger) ([]entry, error) {
	var entries []entry

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == dir {
				return err
			}
			log.Warn("unable to access path", "path", path, "err", err)
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != dir && filter.SkipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !filter.Match(rel) {
			return nil
		}

		var info fs.FileInfo
		switch {
		case d.Type().IsRegular():
			info, err = d.Info()
		case d.Type()&fs.ModeSymlink != 0 && follow:
			info, err = os.Stat(path)
		default:
			return nil
		}
		if err != nil {
			log.Warn("unable to stat file", "path", path, "err", err)
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		entries = append(entries, entry{path: path, rel: rel, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", dir, err)
	}
	return entries, nil
}

func printSummary(console *logger.Logger, s *Summary) {
	console.Info("Scan completed!")
	console.Infof("Files inspected: \t%d", s.Files)
	if s.Failed > 0 {
		console.Warnf("Files skipped: \t%d", s.Failed)
	}
	console.Infof("Total data: \t%s", fmtutil.FormatBytes(s.Bytes))
	console.Infof("Cache hits: \t%d", s.CacheHits)
	console.Infof("Duration: \t%s", FormatDurationHMS(s.Duration))

	mimes := make([]string, 0, len(s.ByMIME))
	for m := range s.ByMIME {
		mimes = append(mimes, m)
	}
	sort.Slice(mimes, func(i, j int) bool {
		if s.ByMIME[mimes[i]] != s.ByMIME[mimes[j]] {
			return s.ByMIME[mimes[i]] > s.ByMIME[mimes[j]]
		}
		return mimes[i] < mimes[j]
	})
	for _, m := range mimes {
		console.Infof("  %6d  %s", s.ByMIME[m], m)
	}
	console.Infof("Report saved to: \t%s", s.ReportFile)
}

func absPath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func GenSessionID() string {
	// YYYYMMDD_HHMMSS
	return time.Now().Format("20060102_150405")
}

func FormatDurationHMS(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	totalSeconds := int64(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
