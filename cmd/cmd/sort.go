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
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ostafen/sniff/internal/scan"
	"github.com/ostafen/sniff/pkg/dfxml"
	"github.com/spf13/cobra"
)

func DefineSortCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort <report_file>",
		Short: "Organize scanned files by kind and extension",
		Long: `The 'sort' command places every file listed in a scan report into <output-dir>/<kind>/<extension>/.
Files are copied by default; with --link, hard links are created instead whenever the output directory is on the same device.
Name clashes are resolved by appending a counter to the file name.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunSort,
	}
	cmd.Flags().StringP("output-dir", "o", "", "path of the directory where sorted files will be placed")
	cmd.Flags().Bool("link", false, "create hard links instead of copies")
	return cmd
}

func RunSort(cmd *cobra.Command, args []string) error {
	report, err := readReport(args[0])
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	if outDir == "" {
		wdir, err := os.Getwd()
		if err != nil {
			return err
		}
		outDir = filepath.Join(wdir, reportName(args[0])+"-sorted")
	}
	link, _ := cmd.Flags().GetBool("link")

	log := console(cmd)
	log.Infof("Sorting %d files into %s", len(report.Objects), outDir)

	n, err := scan.DumpFiles(report, scan.DumpOptions{OutDir: outDir, Link: link}, log)
	if err != nil {
		return err
	}

	log.Infof("%d files sorted.", n)
	if skipped := len(report.Objects) - n; skipped > 0 {
		return fmt.Errorf("%d files could not be sorted", skipped)
	}
	return nil
}

func readReport(path string) (*dfxml.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	report, err := dfxml.ReadReport(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to read report %q: %w", path, err)
	}
	return report, nil
}

func reportName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
