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
	"os"
	"os/signal"
	"syscall"

	"github.com/ostafen/sniff/internal/scan"
	"github.com/spf13/cobra"
)

func DefineScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Detect the type of every file below a directory",
		Long: `The 'scan' command walks a directory tree, detects the type of each selected file with a pool of workers and writes a DFXML report.
Each file object of the report carries the file name, size, MIME type, kind, extension and an xxh64 digest of the inspected bytes.
The report can later be used with the 'sort' and 'mount' commands.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunScan,
	}

	cmd.Flags().StringP("output", "o", "", "the path of the report file")
	cmd.Flags().IntP("workers", "w", 0, "number of files inspected concurrently")
	cmd.Flags().StringSlice("include", nil, "glob patterns of the files to inspect")
	cmd.Flags().StringSlice("exclude", nil, "glob patterns of the files and directories to skip")
	cmd.Flags().Bool("follow-symlinks", false, "inspect the targets of symbolic links to files")
	cmd.Flags().Int("cache-size", 0, "maximum number of cached detection results")
	cmd.Flags().String("log-file", "", "path of the detailed scan log")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")

	return cmd
}

func RunScan(cmd *cobra.Command, args []string) error {
	opts, err := parseScanOptions(cmd, args[0])
	if err != nil {
		return err
	}

	log, closer, err := fileLogger(cmd)
	if err != nil {
		return err
	}
	defer closer.Close()
	opts.Log = log

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = scan.Scan(ctx, opts)
	return err
}

func parseScanOptions(cmd *cobra.Command, dir string) (scan.Options, error) {
	outputFile, _ := cmd.Flags().GetString("output")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	opts := scan.Options{
		Dir:            dir,
		ReportFile:     outputFile,
		ReadLimit:      int(settings.ReadLimit),
		Workers:        settings.Workers,
		CacheSize:      settings.CacheSize,
		Include:        stringSlice(cmd, "include", settings.Include),
		Exclude:        stringSlice(cmd, "exclude", settings.Exclude),
		FollowSymlinks: settings.FollowSymlinks,
		Console:        console(cmd),
	}

	if cmd.Flags().Changed("workers") {
		opts.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("cache-size") {
		opts.CacheSize, _ = cmd.Flags().GetInt("cache-size")
	}
	if cmd.Flags().Changed("follow-symlinks") {
		opts.FollowSymlinks, _ = cmd.Flags().GetBool("follow-symlinks")
	}
	if !noProgress {
		opts.Progress = cmd.OutOrStdout()
	}

	// Validate the patterns before the walk starts.
	if _, err := scan.NewFilter(opts.Include, opts.Exclude); err != nil {
		return opts, err
	}
	return opts, nil
}
