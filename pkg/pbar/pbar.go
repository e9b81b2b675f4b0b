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
package pbar

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ostafen/sniff/pkg/util/format"
	"golang.org/x/term"
)

const MinRefreshRate = time.Millisecond * 500

// ProgressBarState tracks the number of files processed out of a known
// total. It is not safe for concurrent use.
type ProgressBarState struct {
	TotalFiles         int
	ProcessedFiles     int
	ProcessedBytes     int64
	StartTime          time.Time
	LastUpdateTime     time.Time
	LastProcessedFiles int

	out     io.Writer
	enabled bool
}

// NewProgressBarState returns a progress bar printing to out. Nothing is
// printed unless out is a terminal.
func NewProgressBarState(out io.Writer, totalFiles int) *ProgressBarState {
	return &ProgressBarState{
		TotalFiles:     totalFiles,
		StartTime:      time.Now(),
		LastUpdateTime: time.Unix(0, 0),
		out:            out,
		enabled:        IsTerminal(out),
	}
}

func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Add records a processed file of the given size and refreshes the bar.
func (pbs *ProgressBarState) Add(size int64) {
	pbs.ProcessedFiles++
	pbs.ProcessedBytes += size
	pbs.Render(false)
}

func (pbs *ProgressBarState) Render(force bool) {
	if !pbs.enabled {
		return
	}
	if !force && time.Since(pbs.LastUpdateTime) < MinRefreshRate {
		return
	}

	percentage := 100.0
	if pbs.TotalFiles > 0 {
		percentage = float64(pbs.ProcessedFiles) / float64(pbs.TotalFiles) * 100
	}

	barLength := 20
	filledLen := int(float64(barLength) * percentage / 100)
	var bar string
	if filledLen >= barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	var filesPerSec float64
	if elapsed := time.Since(pbs.StartTime).Seconds(); elapsed > 0 {
		filesPerSec = float64(pbs.ProcessedFiles) / elapsed
	}

	var etaStr string
	if pbs.ProcessedFiles > 0 && filesPerSec > 0 {
		etaSeconds := float64(pbs.TotalFiles-pbs.ProcessedFiles) / filesPerSec
		etaStr = fmt.Sprintf("%02d:%02d:%02d remaining",
			int(etaSeconds/3600),
			int(etaSeconds/60)%60,
			int(etaSeconds)%60)
	} else {
		etaStr = "calculating..."
	}

	pbs.LastUpdateTime = time.Now()
	pbs.LastProcessedFiles = pbs.ProcessedFiles

	// The trailing spaces clear leftovers of a previous longer line.
	fmt.Fprintf(pbs.out, "\r[INFO] Progress: [%s] %3.0f%% (%d/%d files, %s) | @ %.1f files/s [%s]    ",
		bar,
		percentage,
		pbs.ProcessedFiles,
		pbs.TotalFiles,
		format.FormatBytes(pbs.ProcessedBytes),
		filesPerSec,
		etaStr)
}

func (pbs *ProgressBarState) Finish() {
	if !pbs.enabled {
		return
	}
	pbs.Render(true)
	fmt.Fprintln(pbs.out) // Move to the next line after the bar is done
}
